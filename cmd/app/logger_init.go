package main

import (
	"github.com/promokit/wheel-service/internal/config"
	"github.com/promokit/wheel-service/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Determine if we should add source info (only in dev)
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		logger.DefaultVersion,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
