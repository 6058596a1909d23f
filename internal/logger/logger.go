// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

var Logger *slog.Logger

// Init sets up the default logger. Debug level is driven by configuration
// rather than read from the environment here.
func Init(debug bool) {
	Logger = build(debug, os.Stdout)
	slog.SetDefault(Logger)
}

// InitWithWriter mirrors log output to an extra writer, used to keep a
// per-run pipeline log alongside stdout.
func InitWithWriter(debug bool, w io.Writer) {
	Logger = build(debug, io.MultiWriter(os.Stdout, w))
	slog.SetDefault(Logger)
}

func build(debug bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// With returns a child logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
