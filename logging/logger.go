// Package logging wraps log/slog with the JSON handler, level names and
// child-logger helpers used across hexnav.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// FileName is the log file created inside the log directory.
const FileName = "hexnav.log"

// Logger is a structured logger. It is safe for concurrent use; child loggers
// share the parent's sink.
type Logger struct {
	logger *slog.Logger
	sink   *sink
	attrs  []any
}

type sink struct {
	mu   sync.Mutex
	file *os.File
}

// NewLogger writes JSON lines to {dir}/hexnav.log, or to stderr when dir is
// empty.
func NewLogger(dir string, level string) (*Logger, error) {
	if dir == "" {
		return NewWriterLogger(os.Stderr, level), nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}

	l := NewWriterLogger(f, level)
	l.sink.file = f
	return l, nil
}

// NewWriterLogger writes JSON lines to w.
func NewWriterLogger(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(level)})
	return &Logger{
		logger: slog.New(handler),
		sink:   &sink{},
	}
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return NewWriterLogger(io.Discard, LevelError)
}

func slogLevel(level string) slog.Level {
	switch ParseLevel(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel normalises a level name, falling back to INFO.
func ParseLevel(level string) string {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevel reports whether level names a known level.
func ValidLevel(level string) bool {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	}
	return false
}

// With returns a child logger carrying extra key/value pairs.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	if len(args) < 2 {
		return l
	}
	attrs := make([]any, 0, len(l.attrs)+len(args))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, args[:len(args)-len(args)%2]...)
	return &Logger{logger: l.logger, sink: l.sink, attrs: attrs}
}

// WithAgent tags entries with the agent id.
func (l *Logger) WithAgent(agent string) *Logger {
	return l.With("agent", agent)
}

// WithRequest tags entries with the navigation request id.
func (l *Logger) WithRequest(id string) *Logger {
	return l.With("request_id", id)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	all := make([]any, 0, len(l.attrs)+len(args))
	all = append(all, l.attrs...)
	all = append(all, args...)
	l.logger.Log(context.Background(), level, msg, all...)
}

// Close syncs and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.sink == nil {
		return nil
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.file == nil {
		return nil
	}
	if err := l.sink.file.Sync(); err != nil {
		return fmt.Errorf("logging: sync log file: %w", err)
	}
	if err := l.sink.file.Close(); err != nil {
		return fmt.Errorf("logging: close log file: %w", err)
	}
	l.sink.file = nil
	return nil
}
