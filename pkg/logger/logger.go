package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New. json logger to stdout, level taken from LOG_LEVEL (default info)
func New() (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if lvl, ok := os.LookupEnv("LOG_LEVEL"); ok {
		parsed, err := zapcore.ParseLevel(lvl)
		if err == nil {
			level.SetLevel(parsed)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
