// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the LeaveSync server and client.
//
// Every entry is JSON and carries the process role, a timestamp and the
// calling function. The server writes to stdout. The client owns the
// terminal while the UI runs, so it logs to a rotated file instead.
// Request-scoped loggers travel in the context and are read back with
// FromContext or FromRequest.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger embeds zerolog.Logger, so the zerolog API is available directly.
type Logger struct {
	zerolog.Logger
}

// Config selects the destination and the minimum level of a Logger.
type Config struct {
	// Role is attached to every entry as the "role" field.
	Role string
	// Level is a zerolog level name. Empty means debug.
	Level string
	// File is a log file rotated by size. Empty means stdout.
	File string
}

// Rotation limits for log files.
const (
	maxFileSizeMB = 10
	maxBackups    = 3
	maxAgeDays    = 28
)

func init() {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}
}

// New builds a Logger from cfg. An unknown level is an error.
func New(cfg Config) (*Logger, error) {
	level := zerolog.DebugLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var w io.Writer = os.Stdout
	if cfg.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
	}

	return newLogger(w, cfg.Role, level), nil
}

// NewLogger returns a debug-level stdout logger for role. Used before the
// configuration is known.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role, zerolog.DebugLevel)
}

func newLogger(w io.Writer, role string, level zerolog.Level) *Logger {
	return &Logger{zerolog.New(w).Level(level).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or zerolog's default
// logger when none is. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
