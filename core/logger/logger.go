// Package logger defines the logging contract consumed by the core packages.
// Implementations live under infra/logger so the domain stays free of any
// logging library dependency.
package logger

// Logger exposes leveled, component-tagged logging.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
