// Package enginelog wraps zap with a fixed level contract: DEBUG for
// resolution traces, INFO for phase boundaries, WARNING for
// mutability/mapping-override events, ERROR for fatal cases.
package enginelog

import (
	"go.uber.org/zap"
)

// Logger is the engine's structured logger. The zero value is not usable;
// construct one with New or NewNop.
type Logger struct {
	z *zap.Logger
}

// New builds a production logger (JSON encoding, info level and above by
// default; pass debug=true to also emit resolution traces).
func New(debug bool) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// ResolutionTrace logs an argument-resolution step (DEBUG).
func (l *Logger) ResolutionTrace(msg string, fields ...zap.Field) {
	l.z.Debug(msg, fields...)
}

// PhaseBoundary logs entry/exit of a scheduler phase (INFO).
func (l *Logger) PhaseBoundary(msg string, fields ...zap.Field) {
	l.z.Info(msg, fields...)
}

// MutabilityWarning logs a skipped write or a name-map override (WARNING).
func (l *Logger) MutabilityWarning(msg string, fields ...zap.Field) {
	l.z.Warn(msg, fields...)
}

// Fatal logs an unrecoverable step failure (ERROR). It does not exit the
// process; the scheduler is expected to abort the phase itself.
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.z.Error(msg, fields...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
