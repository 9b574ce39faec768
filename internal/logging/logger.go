package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for structured logging operations.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Sync() error
}

// Options selects the zap configuration.
type Options struct {
	Environment string // "development" or "production"
	Level       string
	Encoding    string // "json" or "console"; empty picks the environment default
}

type zapLogger struct {
	logger *zap.Logger
}

// New builds a zap-backed Logger. Unknown levels fall back to info.
func New(opts Options) (Logger, error) {
	zl, err := build(opts)
	if err != nil {
		return nil, err
	}
	return &zapLogger{logger: zl}, nil
}

// NewLogger is shorthand for New with the environment default encoder.
func NewLogger(environment, logLevel string) (Logger, error) {
	return New(Options{Environment: environment, Level: logLevel})
}

func build(opts Options) (*zap.Logger, error) {
	var config zap.Config
	if opts.Environment == "development" {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}

	switch opts.Encoding {
	case "json", "console":
		config.Encoding = opts.Encoding
		if opts.Encoding == "json" {
			config.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		}
	}

	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	return config.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

// Unwrap returns the underlying *zap.Logger for libraries that need it directly
// (gin-contrib/zap). NoOp and foreign implementations yield zap.NewNop().
func Unwrap(l Logger) *zap.Logger {
	if zl, ok := l.(*zapLogger); ok {
		return zl.logger.WithOptions(zap.AddCallerSkip(-1))
	}
	return zap.NewNop()
}

func (l *zapLogger) Debug(msg string, fields ...zap.Field) { l.logger.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...zap.Field)  { l.logger.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...zap.Field)  { l.logger.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...zap.Field) { l.logger.Error(msg, fields...) }
func (l *zapLogger) Fatal(msg string, fields ...zap.Field) { l.logger.Fatal(msg, fields...) }

// With creates a child logger with fields permanently attached.
func (l *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{logger: l.logger.With(fields...)}
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func (l *zapLogger) Sync() error {
	err := l.logger.Sync()
	if err != nil && isTerminalSyncError(err) {
		return nil
	}
	return err
}

func isTerminalSyncError(err error) bool {
	switch err.Error() {
	case "sync /dev/stdout: invalid argument", "sync /dev/stderr: invalid argument",
		"sync /dev/stdout: inappropriate ioctl for device", "sync /dev/stderr: inappropriate ioctl for device":
		return true
	}
	return false
}

// NoOpLogger discards everything. Useful for testing.
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(msg string, fields ...zap.Field) {}
func (l *NoOpLogger) Info(msg string, fields ...zap.Field)  {}
func (l *NoOpLogger) Warn(msg string, fields ...zap.Field)  {}
func (l *NoOpLogger) Error(msg string, fields ...zap.Field) {}
func (l *NoOpLogger) Fatal(msg string, fields ...zap.Field) {}
func (l *NoOpLogger) With(fields ...zap.Field) Logger       { return l }
func (l *NoOpLogger) Sync() error                           { return nil }

// NewNoOpLogger creates a no-op logger for testing.
func NewNoOpLogger() Logger {
	return &NoOpLogger{}
}
