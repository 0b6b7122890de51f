// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger carries a structured logger in a context.
//
// The entry point creates a logger with [New] and stores it with [Put].
// Library code logs through [Debug], [Info] and [Error] without taking a
// logger parameter. Without a stored logger, records are discarded.
package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// Options configure a logger created by [New].
type Options struct {
	// Verbose enables debug records.
	Verbose bool
	// Color enables ANSI colors. Set it only for terminals.
	Color bool
}

// New returns a logger writing human-readable records to w.
func New(w io.Writer, o Options) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !o.Color,
	}))
}

// Err returns an attribute for err, highlighted when colors are on.
func Err(err error) slog.Attr { return tint.Err(err) }

type ctxKey struct{}

var discard = slog.New(slog.DiscardHandler)

// Put returns a copy of ctx carrying l.
func Put(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// Get returns the logger carried by ctx, or one that discards everything.
func Get(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return discard
}

// Debug logs a debug message.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

// Info logs an info message.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Error logs an error message.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	Get(ctx).LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
