package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/mailbridge/pkg/logger"
	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// Config is read from the environment, after an optional .env file.
type Config struct {
	DSN    string `env:"MAILER_DSN"`
	Mailer mailer.Config
	Logger logger.Config
}

// loadConfig loads envFile into the environment when it exists, then parses Config.
// Variables already set in the environment take precedence over the file.
func loadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
