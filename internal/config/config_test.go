package config_test

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"onenight/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != 8080 || cfg.LoneWolf || cfg.AnswerTimeout != 2*time.Minute || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ONENIGHT_PORT", "9000")
	t.Setenv("ONENIGHT_LONE_WOLF", "true")
	t.Setenv("ONENIGHT_ANSWER_TIMEOUT", "15s")
	t.Setenv("ONENIGHT_LOG_LEVEL", "debug")
	t.Setenv("ONENIGHT_DEV_LOG", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 || !cfg.LoneWolf || cfg.AnswerTimeout != 15*time.Second || !cfg.DevLog {
		t.Errorf("env not applied: %+v", cfg)
	}
	log, err := cfg.Logger()
	if err != nil {
		t.Fatal(err)
	}
	if !log.Core().Enabled(zap.DebugLevel) {
		t.Error("debug level should be enabled")
	}
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"ONENIGHT_PORT":           "eighty",
		"ONENIGHT_ANSWER_TIMEOUT": "0s",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := config.Load(); err == nil {
				t.Errorf("%s=%s should fail", key, val)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := config.Config{AnswerTimeout: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, d := range []time.Duration{0, -time.Second} {
		cfg.AnswerTimeout = d
		if err := cfg.Validate(); err == nil {
			t.Errorf("answer timeout %s should fail", d)
		}
	}
}

func TestLoggerBadLevel(t *testing.T) {
	cfg := config.Config{LogLevel: "loud"}
	if _, err := cfg.Logger(); err == nil {
		t.Error("expected error for unknown level")
	}
}
