package fsvisit

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the verbosity of logging.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// ZapLevel maps a LogLevel onto the matching zap level.
func (l LogLevel) ZapLevel() zapcore.Level {
	switch l {
	case LogLevelWarn:
		return zap.WarnLevel
	case LogLevelInfo:
		return zap.InfoLevel
	case LogLevelDebug:
		return zap.DebugLevel
	default:
		return zap.ErrorLevel
	}
}

// createLogger creates a zap logger with the specified log level.
func createLogger(level LogLevel) *zap.Logger {
	var config zap.Config

	if level == LogLevelDebug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level.ZapLevel())

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
