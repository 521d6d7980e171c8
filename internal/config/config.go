// Package config содержит логику чтения конфигурации витрины WholeMart.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации витрины.
type Config struct {
	RunAddress  string `env:"RUN_ADDRESS"`
	DatabaseURI string `env:"DATABASE_URI"`
	SMSAPIURL   string `env:"SMS_API_URL"`
	SMSAPIKey   string `env:"SMS_API_KEY"`
	AuthSecret  string `env:"AUTH_SECRET"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envSMSAPIURL := cfg.SMSAPIURL
	envSMSAPIKey := cfg.SMSAPIKey
	envAuthSecret := cfg.AuthSecret

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.SMSAPIURL, "s", "", "SMS gateway URL")
	flag.StringVar(&cfg.SMSAPIKey, "k", "", "SMS gateway API key")
	flag.StringVar(&cfg.AuthSecret, "secret", "", "secret key for auth cookies")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envSMSAPIURL != "" {
		cfg.SMSAPIURL = envSMSAPIURL
	}
	if envSMSAPIKey != "" {
		cfg.SMSAPIKey = envSMSAPIKey
	}
	if envAuthSecret != "" {
		cfg.AuthSecret = envAuthSecret
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
