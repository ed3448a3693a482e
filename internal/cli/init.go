// Package cli provides common initialization utilities shared by the
// server and the report command.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"maechul/internal/category"
	"maechul/internal/config"
	applog "maechul/internal/log"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// BuildClassifier returns the keyword classifier, loading rules from
// the configured file when one is set and falling back to the built-in
// table otherwise.
func BuildClassifier(logger *applog.Logger, cfg *config.Config) *category.Classifier {
	if cfg.CategoryRulesPath == "" {
		return category.Default()
	}
	cls, err := category.NewFromFile(cfg.CategoryRulesPath)
	if err != nil {
		logger.Error("Failed to load category rules",
			applog.FieldError, err, "path", cfg.CategoryRulesPath)
		os.Exit(1)
	}
	logger.Info("Loaded category rules",
		"path", cfg.CategoryRulesPath,
		slog.Int("categories", len(cls.Categories())))
	return cls
}
