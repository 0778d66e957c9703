// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = (*log)(nil)

// Logger defines the interface that is used to keep a record of all events
// that happen to the program
type Logger interface {
	// Log that a fatal error has occurred. The program should likely exit soon
	// after this is called
	Fatal(msg string, fields ...zap.Field)
	// Log that an error has occurred. The program should be able to recover
	// from this error
	Error(msg string, fields ...zap.Field)
	// Log that an event has occurred that may indicate a future error or
	// vulnerability
	Warn(msg string, fields ...zap.Field)
	// Log an event that may be useful for a user to see to measure the progress
	// of the system
	Info(msg string, fields ...zap.Field)
	// Log an event that may be useful for understanding the order of the
	// execution of the system
	Debug(msg string, fields ...zap.Field)

	// With returns a logger that attaches [fields] to every record
	With(fields ...zap.Field) Logger
	// SetLevel changes the minimum level that is recorded
	SetLevel(level zapcore.Level)
	// Stop flushes any buffered records
	Stop()
}

type log struct {
	internalLogger *zap.Logger
	level          zap.AtomicLevel
}

// NewLogger wraps [internalLogger]. [level] controls the records that pass
// through all of its cores.
func NewLogger(internalLogger *zap.Logger, level zap.AtomicLevel) Logger {
	return &log{
		internalLogger: internalLogger,
		level:          level,
	}
}

func (l *log) Fatal(msg string, fields ...zap.Field) {
	l.internalLogger.Fatal(msg, fields...)
}

func (l *log) Error(msg string, fields ...zap.Field) {
	l.internalLogger.Error(msg, fields...)
}

func (l *log) Warn(msg string, fields ...zap.Field) {
	l.internalLogger.Warn(msg, fields...)
}

func (l *log) Info(msg string, fields ...zap.Field) {
	l.internalLogger.Info(msg, fields...)
}

func (l *log) Debug(msg string, fields ...zap.Field) {
	l.internalLogger.Debug(msg, fields...)
}

func (l *log) With(fields ...zap.Field) Logger {
	return &log{
		internalLogger: l.internalLogger.With(fields...),
		level:          l.level,
	}
}

func (l *log) SetLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}

func (l *log) Stop() {
	_ = l.internalLogger.Sync()
}
