// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the structured fields used by the
// spatial indices. Indices log structural changes, such as node splits
// and root growth, at debug level and allocator exhaustion at warn
// level.
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

// NewTextLogger creates a Logger that outputs human-readable text logs
// at or above level.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithIndex adds an index kind field, such as "rtree", to the logger.
func (l *Logger) WithIndex(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("index", kind),
	}
}

// LogSplit logs the split of a node at the given level.
func (l *Logger) LogSplit(level, left, right int) {
	l.Debug("node split",
		"level", level,
		"left", left,
		"right", right,
	)
}

// LogGrow logs a change in the height of a tree.
func (l *Logger) LogGrow(from, to int) {
	l.Debug("tree height changed",
		"from", from,
		"to", to,
	)
}

// LogCondense logs the elimination of underfull nodes after a removal.
func (l *Logger) LogCondense(eliminated, orphans int) {
	l.Debug("tree condensed",
		"eliminated", eliminated,
		"orphans", orphans,
	)
}

// LogOverflow logs an operation abandoned because the node allocator
// could not supply the nodes it needed.
func (l *Logger) LogOverflow(op string, needed int) {
	l.Warn("allocator exhausted",
		"op", op,
		"needed", needed,
	)
}

// LogSubdivide logs the subdivision of a quad-tree node at the given
// depth into child quadrants.
func (l *Logger) LogSubdivide(depth, stayed, moved int) {
	l.Debug("node subdivided",
		"depth", depth,
		"stayed", stayed,
		"moved", moved,
	)
}
