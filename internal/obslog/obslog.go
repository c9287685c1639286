// Package obslog wraps zap with the field vocabulary the pipeline emits
// on: job, stage, and artifact identifiers. It plays the role
// core/backend/services.LoggingService plays for the HTTP layer, scoped to
// the geometry pipeline instead of request/response logging.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.Logger with pipeline-shaped helpers.
type Logger struct {
	z *zap.Logger
}

// New builds a Logger at the given level ("debug", "info", "warn", "error").
// Unrecognized levels fall back to info.
func New(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// Noop returns a Logger that discards everything, for tests.
func Noop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// WithJob returns a child logger scoped to a pipeline run.
func (l *Logger) WithJob(jobID string) *Logger {
	return &Logger{z: l.z.With(zap.String("job_id", jobID))}
}

// WithStage returns a child logger scoped to a single stage invocation.
func (l *Logger) WithStage(stage string) *Logger {
	return &Logger{z: l.z.With(zap.String("stage", stage))}
}

// Info logs at info level with structured fields.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.z.Info(msg, fields...) }

// Warn logs at warn level with structured fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.z.Warn(msg, fields...) }

// Error logs at error level with structured fields.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.z.Sync() }
