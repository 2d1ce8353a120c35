package logger

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger      atomic.Pointer[zap.SugaredLogger]
	defaultOnce sync.Once
)

// InitLogger initializes the global sugared logger.
// format is "json" (default) or "console".
func InitLogger(level, format string) error {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	// stdout carries command output; logs go to stderr
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	z, err := cfg.Build()
	if err != nil {
		return err
	}

	logger.Store(z.Sugar().With("service", "medidemo"))
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// L returns the global sugared logger. It is safe for concurrent use.
// If InitLogger has not been called, it initializes at info level.
func L() *zap.SugaredLogger {
	if l := logger.Load(); l != nil {
		return l
	}
	defaultOnce.Do(func() {
		if err := InitLogger("info", "json"); err != nil {
			logger.CompareAndSwap(nil, zap.NewNop().Sugar())
		}
	})
	return logger.Load()
}

// Sync flushes buffered log entries.
func Sync() {
	if l := logger.Load(); l != nil {
		_ = l.Sync()
	}
}
