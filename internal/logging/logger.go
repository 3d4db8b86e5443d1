package logging

import (
	"vtex-sankhya-sync/internal/config"

	"go.uber.org/zap"
)

func NewZapLog(cfg config.LogConfig) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zapcfg := zap.NewProductionConfig()
	zapcfg.Level = lvl
	return zapcfg.Build()
}
