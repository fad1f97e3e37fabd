// Package battlelog builds the zap logger that traces a battle hit by hit.
package battlelog

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/udisondev/famsim/internal/config"
)

// New returns a trace logger configured by cfg.
// Development mode writes colored console lines, otherwise JSON.
func New(cfg config.Trace) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("trace level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.DisableStacktrace = true
	if cfg.Output != "" {
		zc.OutputPaths = []string{cfg.Output}
	}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building trace logger: %w", err)
	}
	return log.Named("battle"), nil
}
