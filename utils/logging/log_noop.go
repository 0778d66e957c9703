// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = NoLog{}

// NoLog drops every record. Used by tests and by callers that don't care.
type NoLog struct{}

func (NoLog) Fatal(string, ...zap.Field) {}

func (NoLog) Error(string, ...zap.Field) {}

func (NoLog) Warn(string, ...zap.Field) {}

func (NoLog) Info(string, ...zap.Field) {}

func (NoLog) Debug(string, ...zap.Field) {}

func (n NoLog) With(...zap.Field) Logger { return n }

func (NoLog) SetLevel(zapcore.Level) {}

func (NoLog) Stop() {}
