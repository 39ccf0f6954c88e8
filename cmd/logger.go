package cmd

import (
	"os"

	"github.com/TFMV/fsvisit/visit"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logLevel picks the verbosity from the verbose and silent flags.
func logLevel(v *viper.Viper) visit.LogLevel {
	switch {
	case v.GetBool("verbose"):
		return visit.LogLevelDebug
	case v.GetBool("silent"):
		return visit.LogLevelError
	default:
		return visit.LogLevelWarn
	}
}

// newLogger builds the CLI logger. Logs go to stderr, or to a rotated file
// when --log-file is set.
func newLogger(v *viper.Viper) *zap.Logger {
	level := logLevel(v).ZapLevel()

	if path := v.GetString("log-file"); path != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		return zap.New(zapcore.NewCore(encoder, w, level))
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}
