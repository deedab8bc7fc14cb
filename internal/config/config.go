package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port          int           `env:"ONENIGHT_PORT" envDefault:"8080"`
	LoneWolf      bool          `env:"ONENIGHT_LONE_WOLF" envDefault:"false"`
	AnswerTimeout time.Duration `env:"ONENIGHT_ANSWER_TIMEOUT" envDefault:"2m"`
	LogLevel      string        `env:"ONENIGHT_LOG_LEVEL" envDefault:"info"`
	DevLog        bool          `env:"ONENIGHT_DEV_LOG" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that may also arrive from command line overrides.
func (c Config) Validate() error {
	if c.AnswerTimeout <= 0 {
		return fmt.Errorf("answer timeout must be positive, got %s", c.AnswerTimeout)
	}
	return nil
}

// Logger builds a zap logger at the configured level. DevLog switches to
// the human readable console encoder.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.DevLog {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
