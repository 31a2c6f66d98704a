package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SafeLogger wraps zap so that a nil or uninitialized logger never panics
type SafeLogger struct {
	logger *zap.Logger
}

var (
	// Logger is the global logger instance
	Logger = &SafeLogger{logger: zap.NewNop()}
)

// NewSafeLogger wraps an existing zap logger
func NewSafeLogger(l *zap.Logger) *SafeLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &SafeLogger{logger: l}
}

// InitLogger initializes the global logger
func InitLogger() error {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Set log level from environment
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(logLevel)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	options := []zap.Option{
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("service", "app-cadastro"),
			zap.String("version", "v1"),
		),
	}

	// Mirror the log stream into a rotated file when LOG_FILE is set
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(config.EncoderConfig),
			zapcore.AddSync(rotator),
			config.Level,
		)
		options = append(options, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	l, err := config.Build(options...)
	if err != nil {
		return err
	}

	Logger = &SafeLogger{logger: l}
	zap.ReplaceGlobals(l)
	return nil
}

func (s *SafeLogger) zap() *zap.Logger {
	if s == nil || s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

// Debug logs at debug level
func (s *SafeLogger) Debug(msg string, fields ...zap.Field) { s.zap().Debug(msg, fields...) }

// Info logs at info level
func (s *SafeLogger) Info(msg string, fields ...zap.Field) { s.zap().Info(msg, fields...) }

// Warn logs at warn level
func (s *SafeLogger) Warn(msg string, fields ...zap.Field) { s.zap().Warn(msg, fields...) }

// Error logs at error level
func (s *SafeLogger) Error(msg string, fields ...zap.Field) { s.zap().Error(msg, fields...) }

// Fatal logs and exits
func (s *SafeLogger) Fatal(msg string, fields ...zap.Field) { s.zap().Fatal(msg, fields...) }

// With returns a child logger carrying fields
func (s *SafeLogger) With(fields ...zap.Field) *SafeLogger {
	return &SafeLogger{logger: s.zap().With(fields...)}
}

// Named returns a child logger with a name segment
func (s *SafeLogger) Named(name string) *SafeLogger {
	return &SafeLogger{logger: s.zap().Named(name)}
}

// Sync flushes buffered entries
func (s *SafeLogger) Sync() error {
	return s.zap().Sync()
}
