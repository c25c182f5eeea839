// Package logger provides structured logging for the xdrwire tools, built on
// log/slog. Diagnostics go to stderr so the tools can write inspected data to
// stdout in a pipe. The codec package itself never logs; this package exists
// for the CLI layer only.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config holds logger configuration.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
}

var (
	mu      sync.RWMutex
	output  io.Writer = os.Stderr
	level             = new(slog.LevelVar)
	format            = "text"
	slogger *slog.Logger
)

func init() {
	level.Set(slog.LevelInfo)
	reconfigure()
}

// reconfigure rebuilds the slog handler from the current settings. Callers
// must hold mu or be single-threaded (init).
func reconfigure() {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		slogger = slog.New(slog.NewJSONHandler(output, opts))
	} else {
		slogger = slog.New(slog.NewTextHandler(output, opts))
	}
}

// Init applies the given configuration. Empty fields keep their current
// values; invalid levels and formats are ignored.
func Init(cfg Config) {
	SetLevel(cfg.Level)
	SetFormat(cfg.Format)
}

// InitWithWriter redirects log output, primarily for tests.
func InitWithWriter(w io.Writer, cfg Config) {
	mu.Lock()
	output = w
	reconfigure()
	mu.Unlock()
	Init(cfg)
}

// SetLevel sets the minimum log level by name.
func SetLevel(name string) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		level.Set(slog.LevelDebug)
	case "INFO":
		level.Set(slog.LevelInfo)
	case "WARN":
		level.Set(slog.LevelWarn)
	case "ERROR":
		level.Set(slog.LevelError)
	}
}

// SetFormat selects the output format, "text" or "json".
func SetFormat(f string) {
	f = strings.ToLower(f)
	if f != "text" && f != "json" {
		return
	}
	mu.Lock()
	format = f
	reconfigure()
	mu.Unlock()
}

func getLogger() *slog.Logger {
	mu.RLock()
	l := slogger
	mu.RUnlock()
	return l
}

// Debug logs at debug level with structured fields.
// Usage: Debug("message", "key1", value1, "key2", value2)
func Debug(msg string, args ...any) {
	getLogger().Debug(msg, args...)
}

// Info logs at info level with structured fields.
func Info(msg string, args ...any) {
	getLogger().Info(msg, args...)
}

// Warn logs at warn level with structured fields.
func Warn(msg string, args ...any) {
	getLogger().Warn(msg, args...)
}

// Error logs at error level with structured fields.
func Error(msg string, args ...any) {
	getLogger().Error(msg, args...)
}
