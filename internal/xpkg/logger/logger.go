package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger is the structured logger passed through every service. Action tags the
// log entry with the operation being performed so entries can be grepped by
// workflow step.
type Logger interface {
	Action(action string) Logger
	With(args ...any) Logger
	WithGroup(group string) Logger

	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, err error, args ...any)
}

type slogLogger struct {
	sl *slog.Logger
}

// New creates a JSON logger writing to stdout at the given level
// (DEBUG | INFO | WARN | ERROR).
func New(level string) (Logger, error) {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "INFO", "":
		lvl = slog.LevelInfo
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %s", level)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	hostname, _ := os.Hostname()

	return &slogLogger{
		sl: slog.New(handler).With("hostname", hostname),
	}, nil
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() Logger {
	return &slogLogger{
		sl: slog.New(slog.DiscardHandler),
	}
}

func (l *slogLogger) Action(action string) Logger {
	return &slogLogger{sl: l.sl.With("action", action)}
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{sl: l.sl.With(args...)}
}

func (l *slogLogger) WithGroup(group string) Logger {
	return &slogLogger{sl: l.sl.WithGroup(group)}
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.sl.Debug(msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.sl.Info(msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.sl.Warn(msg, args...)
}

func (l *slogLogger) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.sl.Error(msg, args...)
}
