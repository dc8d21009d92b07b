// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Field represents a structured logging field with a key-value pair.
type Field struct {
	Key   string
	Value interface{}
}

// Logger defines the interface for structured logging throughout the
// package. Handlers treat a nil logger as "log nothing".
type Logger interface {
	// Debug logs debug-level messages with optional structured fields.
	Debug(msg string, fields ...Field)

	// Info logs info-level messages with optional structured fields.
	Info(msg string, fields ...Field)

	// Warn logs warning-level messages with optional structured fields.
	Warn(msg string, fields ...Field)

	// Error logs error-level messages with optional structured fields.
	Error(msg string, fields ...Field)

	// With creates a new logger instance with the provided fields pre-populated.
	With(fields ...Field) Logger
}

// NoOpLogger is a Logger implementation that discards all log messages.
type NoOpLogger struct{}

// Debug discards debug-level log messages.
func (l *NoOpLogger) Debug(msg string, fields ...Field) {}

// Info discards info-level log messages.
func (l *NoOpLogger) Info(msg string, fields ...Field) {}

// Warn discards warning-level log messages.
func (l *NoOpLogger) Warn(msg string, fields ...Field) {}

// Error discards error-level log messages.
func (l *NoOpLogger) Error(msg string, fields ...Field) {}

// With returns a new NoOpLogger instance (ignores fields).
func (l *NoOpLogger) With(fields ...Field) Logger {
	return &NoOpLogger{}
}

// StandardLogger wraps Go's standard log package to implement the Logger
// interface.
type StandardLogger struct {
	// Logger is the underlying standard library logger.
	Logger *log.Logger

	// contextFields holds fields included in all log messages.
	contextFields []Field
}

// ensureLogger initializes the underlying logger if it is nil.
func (l *StandardLogger) ensureLogger() *log.Logger {
	if l.Logger == nil {
		l.Logger = log.New(os.Stderr, "RFB: ", log.LstdFlags|log.Lshortfile)
	}
	return l.Logger
}

// formatMessage formats a log message with structured fields.
func (l *StandardLogger) formatMessage(level, msg string, fields ...Field) string {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)

	for _, field := range l.contextFields {
		b.WriteByte(' ')
		b.WriteString(field.Key)
		b.WriteByte('=')
		b.WriteString(formatFieldValue(field.Value))
	}
	for _, field := range fields {
		b.WriteByte(' ')
		b.WriteString(field.Key)
		b.WriteByte('=')
		b.WriteString(formatFieldValue(field.Value))
	}

	return b.String()
}

// formatFieldValue converts a field value to its logged representation.
// Strings containing whitespace and errors are quoted.
func formatFieldValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		if strings.ContainsAny(v, " \t\n\r") {
			return `"` + v + `"`
		}
		return v
	case error:
		return `"` + v.Error() + `"`
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Debug logs a debug-level message with structured fields.
func (l *StandardLogger) Debug(msg string, fields ...Field) {
	l.ensureLogger().Print(l.formatMessage("[DEBUG]", msg, fields...))
}

// Info logs an info-level message with structured fields.
func (l *StandardLogger) Info(msg string, fields ...Field) {
	l.ensureLogger().Print(l.formatMessage("[INFO]", msg, fields...))
}

// Warn logs a warning-level message with structured fields.
func (l *StandardLogger) Warn(msg string, fields ...Field) {
	l.ensureLogger().Print(l.formatMessage("[WARN]", msg, fields...))
}

// Error logs an error-level message with structured fields.
func (l *StandardLogger) Error(msg string, fields ...Field) {
	l.ensureLogger().Print(l.formatMessage("[ERROR]", msg, fields...))
}

// With creates a new StandardLogger with additional context fields that
// are included in all subsequent log messages.
func (l *StandardLogger) With(fields ...Field) Logger {
	newContextFields := make([]Field, 0, len(l.contextFields)+len(fields))
	newContextFields = append(newContextFields, l.contextFields...)
	newContextFields = append(newContextFields, fields...)

	return &StandardLogger{
		Logger:        l.Logger,
		contextFields: newContextFields,
	}
}
