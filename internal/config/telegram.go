package config

import "os"

const tokenEnvKey = "TELEGRAM_TOKEN"

type TelegramConfig struct {
	BotToken       string `yaml:"token"`
	PollingTimeout int    `yaml:"polling-timeout-seconds"`
}

// Token prefers TELEGRAM_TOKEN so the secret can stay out of the file.
func (t *TelegramConfig) Token() string {
	if token := os.Getenv(tokenEnvKey); token != "" {
		return token
	}
	return t.BotToken
}

func (t *TelegramConfig) TimeoutSeconds() int {
	if t.PollingTimeout <= 0 {
		return 60
	}
	return t.PollingTimeout
}
