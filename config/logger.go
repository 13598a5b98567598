package config

import (
	"go.uber.org/zap"
)

func NewLogger(cfg *Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Env.IsDevelopment {
		zc = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zc.Level = level

	return zc.Build()
}
