// Package observability provides structured logging and Prometheus metrics
// for the BOM resolution pipeline.
package observability

import (
	"go.uber.org/zap"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `json:"level"`
	Format      string `json:"format"` // "json" or "console"
	OutputPath  string `json:"output_path"`
	Development bool   `json:"development"`
}

// NewLogger creates a structured logger from the given configuration
func NewLogger(config LogConfig) (*zap.Logger, error) {
	var zapConfig zap.Config

	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	if config.OutputPath != "" {
		zapConfig.OutputPaths = []string{config.OutputPath}
	}

	return zapConfig.Build()
}

// NewDefaultLogger creates a logger with sensible defaults
func NewDefaultLogger() *zap.Logger {
	logger, err := NewLogger(LogConfig{Level: "info", Format: "json"})
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
