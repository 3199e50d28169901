// Package log provides the process-wide structured logger used by nativegen.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the verbosity of logging
type LogLevel string

const (
	// LevelDebug enables all logs
	LevelDebug LogLevel = "debug"
	// LevelInfo enables info, warning, and error logs
	LevelInfo LogLevel = "info"
	// LevelProgress enables progress, warning, and error logs (default)
	LevelProgress LogLevel = "progress"
	// LevelMinimal enables only warning and error logs
	LevelMinimal LogLevel = "minimal"
	// LevelWarn is an alias for LevelMinimal
	LevelWarn LogLevel = "warn"
	// LevelError enables only error logs
	LevelError LogLevel = "error"
)

var (
	globalLogger *zap.SugaredLogger
	globalMutex  sync.RWMutex
)

// Config holds logger configuration
type Config struct {
	Level LogLevel
	// Output receives encoded entries. Nil means stdout.
	Output io.Writer
	// NoColor disables ANSI level colors, useful when Output is not a terminal.
	NoColor bool
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level: LevelProgress,
	}
}

// ParseLevel validates a level name given on the command line or in a config file.
// The empty string selects the default level.
func ParseLevel(s string) (LogLevel, error) {
	switch level := LogLevel(strings.ToLower(strings.TrimSpace(s))); level {
	case "":
		return LevelProgress, nil
	case LevelDebug, LevelInfo, LevelProgress, LevelMinimal, LevelWarn, LevelError:
		return level, nil
	default:
		return "", fmt.Errorf("unknown log level %q (want debug, info, progress, minimal, warn or error)", s)
	}
}

// Init replaces the global logger
func Init(cfg Config) error {
	logger := newLogger(cfg)

	globalMutex.Lock()
	defer globalMutex.Unlock()
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
	globalLogger = logger
	return nil
}

func mapLevelToZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo, LevelProgress:
		// progress has no zap counterpart and shares the info level
		return zapcore.InfoLevel
	case LevelMinimal, LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func buildEncoderConfig(noColor bool) zapcore.EncoderConfig {
	encodeLevel := zapcore.CapitalColorLevelEncoder
	if noColor {
		encodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "M",
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func newLogger(cfg Config) *zap.SugaredLogger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(buildEncoderConfig(cfg.NoColor)),
		zapcore.AddSync(out),
		mapLevelToZapLevel(cfg.Level),
	)
	return zap.New(core).Sugar()
}

// Get returns the global logger, creating a default one on first use
func Get() *zap.SugaredLogger {
	globalMutex.RLock()
	logger := globalLogger
	globalMutex.RUnlock()
	if logger != nil {
		return logger
	}

	// built outside the lock; Init takes the same lock
	fresh := newLogger(DefaultConfig())

	globalMutex.Lock()
	defer globalMutex.Unlock()
	if globalLogger == nil {
		globalLogger = fresh
	}
	return globalLogger
}

// Debug logs a debug message with key/value pairs
func Debug(msg string, args ...interface{}) {
	Get().Debugw(msg, args...)
}

// Info logs an info message with key/value pairs
func Info(msg string, args ...interface{}) {
	Get().Infow(msg, args...)
}

// Progress logs a progress message (info level)
func Progress(msg string, args ...interface{}) {
	Get().Infow(msg, args...)
}

// Progressf logs a formatted progress message
func Progressf(template string, args ...interface{}) {
	Get().Infof(template, args...)
}

// Warn logs a warning message with key/value pairs
func Warn(msg string, args ...interface{}) {
	Get().Warnw(msg, args...)
}

// Error logs an error message with key/value pairs
func Error(msg string, args ...interface{}) {
	Get().Errorw(msg, args...)
}

// Sync flushes any buffered log entries
func Sync() error {
	globalMutex.RLock()
	logger := globalLogger
	globalMutex.RUnlock()

	if logger != nil {
		return logger.Sync()
	}
	return nil
}

// Reset drops the global logger (mainly for testing)
func Reset() {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
	globalLogger = nil
}
