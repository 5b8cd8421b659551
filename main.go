package main

import (
	"context"
	"repo-welcome-bot/internal"
	"repo-welcome-bot/internal/bot"
	"repo-welcome-bot/internal/web"
	"repo-welcome-bot/internal/web/routes"
	"time"

	"github.com/google/go-github/v68/github"
	"github.com/gregjones/httpcache"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func initializeGithubClient(ctx context.Context, githubToken string, logger *zap.Logger) *github.Client {
	client := github.NewClient(httpcache.NewMemoryCacheTransport().Client()).WithAuthToken(githubToken)

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		logger.Fatal("Failed to authenticate with GitHub API", zap.Error(err))
	}
	logger.Info("Authenticated with GitHub API", zap.String("username", user.GetLogin()))

	return client
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	logger.Info("starting server")

	if err := godotenv.Load(); err != nil {
		logger.Info(".env file not found, using system environment")
	}

	config, err := internal.LoadConfiguration()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	e := echo.New()
	ctx := context.Background()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(web.CreateAppContext(logger))
	e.Pre(middleware.AddTrailingSlash())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Skipper:                    middleware.DefaultSkipper,
		ErrorMessage:               "request timeout",
		OnTimeoutRouteErrorHandler: func(err error, c echo.Context) {},
		Timeout:                    15 * time.Second,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogRequestID: true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("remoteip", v.RemoteIP),
				zap.String("requestid", v.RequestID),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	githubClient := initializeGithubClient(ctx, config.GithubToken, logger)

	dispatcher := bot.NewDispatcher(
		&bot.GithubCommentPoster{Client: githubClient},
		&bot.SlackNotifier{WebhookURL: config.SlackWebhookURL},
		logger,
	)

	routes.CreateRoutes(e, dispatcher, []byte(config.WebhookSecret))
	logger.Info("server started", zap.String("address", config.ListenAddress))
	err = e.Start(config.ListenAddress)
	if err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
