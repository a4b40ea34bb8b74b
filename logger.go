package tablo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tablo-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogAppend logs a row append operation.
func (l *Logger) LogAppend(count int, err error) {
	if err != nil {
		l.Error("append failed",
			"error", err,
		)
	} else {
		l.Debug("append completed",
			"rows", count,
		)
	}
}

// LogColumnOp logs a structural column operation (rename, remove, set,
// derive, map).
func (l *Logger) LogColumnOp(op, column string, err error) {
	if err != nil {
		l.Error("column operation failed",
			"op", op,
			"column", column,
			"error", err,
		)
	} else {
		l.Debug("column operation completed",
			"op", op,
			"column", column,
		)
	}
}

// LogSort logs a sort operation.
func (l *Logger) LogSort(column string, rows int, err error) {
	if err != nil {
		l.Error("sort failed",
			"column", column,
			"error", err,
		)
	} else {
		l.Debug("sort completed",
			"column", column,
			"rows", rows,
		)
	}
}

// LogSelect logs a column projection.
func (l *Logger) LogSelect(columns []string, rows int, err error) {
	if err != nil {
		l.Error("select failed",
			"columns", columns,
			"error", err,
		)
	} else {
		l.Debug("select completed",
			"columns", columns,
			"rows", rows,
		)
	}
}

// LogFilter logs a row filter.
func (l *Logger) LogFilter(kept, total int) {
	l.Debug("filter completed",
		"kept", kept,
		"total", total,
	)
}

// LogJoin logs a join operation.
func (l *Logger) LogJoin(mode JoinMode, left, right, out int, err error) {
	if err != nil {
		l.Error("join failed",
			"mode", mode.String(),
			"error", err,
		)
	} else {
		l.Debug("join completed",
			"mode", mode.String(),
			"left_rows", left,
			"right_rows", right,
			"out_rows", out,
		)
	}
}

// LogIndexBuild logs an index build.
func (l *Logger) LogIndexBuild(column string, entries int, err error) {
	if err != nil {
		l.Error("index build failed",
			"column", column,
			"error", err,
		)
	} else {
		l.Debug("index build completed",
			"column", column,
			"entries", entries,
		)
	}
}
