package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/tempo/pkg/logger"
)

// config is read from the environment.
type config struct {
	Locale     string `env:"TEMPO_LOCALE" envDefault:"en"`
	Timezone   string `env:"TEMPO_TIMEZONE"`
	LocalesDir string `env:"TEMPO_LOCALES_DIR"`
	LogLevel   string `env:"TEMPO_LOG_LEVEL" envDefault:"warn"`
	Sentry     logger.SentryConfig
}

func loadConfig() (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}
