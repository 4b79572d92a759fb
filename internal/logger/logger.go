// Package logger builds the zap logger the rest of the service receives
// through constructor injection.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a sugared logger configured for the given environment.
// Production builds JSON output, anything else gets the development console
// encoder.
func New(env, level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level failed: %w", err)
	}

	var cfg zap.Config
	if env == "prod" || env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger failed: %w", err)
	}
	return zl.Sugar(), nil
}
