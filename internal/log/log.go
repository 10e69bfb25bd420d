// Package log is the application's levelled key/value logger.
//
// Call sites pass alternating key/value pairs after the message:
//
//	log.Info("layout computed", "month", m, "bars", len(l.Bars))
//	log.Error("goal store load failed", err, "path", path)
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

var (
	mu       sync.Mutex
	level    = new(slog.LevelVar)
	logger   = newLogger(os.Stderr)
	minLevel = LevelInfo
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel maps a config/flag string to a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "INFO":
		return LevelInfo, nil
	case "DEBUG":
		return LevelDebug, nil
	case "ERROR":
		return LevelError, nil
	}
	return "", fmt.Errorf("log: unknown level %q", s)
}

func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
	level.Set(toSlog(l))
}

// CurrentLevel returns the active minimum level.
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// SetOutput redirects log lines, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

func Debug(msg string, kv ...any) {
	current().Debug(msg, kv...)
}

func Info(msg string, kv ...any) {
	current().Info(msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	// err always goes first so it lines up across call sites.
	current().Error(msg, append([]any{"err", err}, kv...)...)
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func toSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
