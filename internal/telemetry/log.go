// Package telemetry wires the matching core's activity to the outside
// world: structured logs, Prometheus metrics, and a JSON/WebSocket
// dashboard feed.
package telemetry

import (
	"go.uber.org/zap"
)

// NewLogger builds a zap logger for the given level ("debug", "info",
// "warn", "error"); an empty or unrecognized level defaults to info.
// If file is non-empty, logs also go to that path in addition to
// stderr.
func NewLogger(level, file string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zapLevel
	cfg.OutputPaths = []string{"stderr"}
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}
	return cfg.Build()
}
