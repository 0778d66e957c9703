// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	JSONFormat  = "json"
	PlainFormat = "plain"
	AutoFormat  = "auto"
)

var errUnknownFormat = errors.New("unknown log format")

// Config defines the configuration of a logger
type Config struct {
	// Minimum level that is written
	Level string `json:"level"`
	// One of "json", "plain" or "auto"
	Format string `json:"format"`
	// Directory the rotated log file is written to. Empty disables file
	// output.
	Directory string `json:"directory"`
	// Size, in megabytes, a log file may reach before rotation
	MaxSize int `json:"maxSize"`
	// Number of rotated files to keep
	MaxFiles int `json:"maxFiles"`
	// Days a rotated file is kept
	MaxAge int `json:"maxAge"`
	// Gzip rotated files
	Compress bool `json:"compress"`
}

// New builds a Logger named [name] from [config]. Records are written to
// stderr and, when a directory is configured, to [name].log in it.
func New(name string, config Config) (Logger, error) {
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse log level %q: %w", config.Level, err)
	}
	atomicLevel := zap.NewAtomicLevelAt(level)

	consoleEncoder, err := newEncoder(config.Format, true)
	if err != nil {
		return nil, err
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), atomicLevel),
	}

	if config.Directory != "" {
		fileEncoder, err := newEncoder(JSONFormat, false)
		if err != nil {
			return nil, err
		}
		writer := &lumberjack.Logger{
			Filename:   filepath.Join(config.Directory, name+".log"),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxFiles,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		}
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(writer), atomicLevel))
	}

	internal := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Named(name)
	return NewLogger(internal, atomicLevel), nil
}

func newEncoder(format string, console bool) (zapcore.Encoder, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch strings.ToLower(format) {
	case JSONFormat:
		return zapcore.NewJSONEncoder(encoderConfig), nil
	case PlainFormat:
		return zapcore.NewConsoleEncoder(encoderConfig), nil
	case AutoFormat, "":
		if console {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			return zapcore.NewConsoleEncoder(encoderConfig), nil
		}
		return zapcore.NewJSONEncoder(encoderConfig), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}
