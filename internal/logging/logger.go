package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger
type Logger struct {
	*zap.SugaredLogger
}

// creates console logger on stderr, debug level when verbose
func NewLogger(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !verbose {
		encoderCfg.TimeKey = ""
		encoderCfg.CallerKey = ""
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(level),
	)

	opts := []zap.Option{}
	if verbose {
		opts = append(opts, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return &Logger{zap.New(core, opts...).Sugar()}
}

// wraps an existing zap logger, used by tests with zaptest
func FromZap(l *zap.Logger) *Logger {
	return &Logger{l.Sugar()}
}

// logger that discards everything
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// child logger with the given key/value pairs attached
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.SugaredLogger.With(args...)}
}
