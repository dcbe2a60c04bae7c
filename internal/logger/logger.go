package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger at the given level. An unparseable level
// falls back to info.
func New(logLevel string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg.Level.SetLevel(level)
	return cfg.Build()
}
