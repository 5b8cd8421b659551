package internal

import "github.com/caarlos0/env/v11"

type Configuration struct {
	GithubToken     string `env:"GITHUB_TOKEN,notEmpty"`
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL,notEmpty"`
	WebhookSecret   string `env:"WEBHOOK_SECRET,notEmpty"`
	ListenAddress   string `env:"LISTEN_ADDRESS" envDefault:"0.0.0.0:8080"`
}

func LoadConfiguration() (Configuration, error) {
	config := Configuration{}
	err := env.Parse(&config)
	if err != nil {
		return config, err
	}
	return config, nil
}
