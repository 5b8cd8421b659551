package routes

import (
	"repo-welcome-bot/internal/bot"

	"github.com/labstack/echo/v4"
)

func CreateRoutes(e *echo.Echo, dispatcher *bot.Dispatcher, webhookSecret []byte) {
	webhookController := &WebhookController{Dispatcher: dispatcher, WebhookSecret: webhookSecret}

	e.GET("/", webhookController.Healthcheck)
	e.POST("/webhook/", webhookController.HandleWebhook)
}
