// Package logger holds the process-wide zap logger. Library packages log
// through L(), which is a no-op until the program installs a logger with Set.
package logger

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// L returns the current logger.
func L() *zap.Logger {
	return current.Load()
}

// Set replaces the current logger. A nil logger restores the no-op one.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

// Options configures New.
type Options struct {
	// Level is a zap level name, "info" when empty or unknown.
	Level string
	// File, when set, receives JSON lines through a rotating writer.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// JSONConsole writes the console output as JSON instead of text.
	JSONConsole bool
}

// New builds a logger writing to stderr and, optionally, to a rotated file.
func New(opts Options) *zap.Logger {
	level := zap.InfoLevel
	if opts.Level != "" {
		if l, err := zapcore.ParseLevel(opts.Level); err == nil {
			level = l
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	var consoleEncoder zapcore.Encoder
	if opts.JSONConsole {
		consoleEncoder = jsonEncoder
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
