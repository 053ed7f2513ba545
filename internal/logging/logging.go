// Package logging configures the structured application log
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// New returns a JSON logger writing to a rotated file at path. The returned
// closer releases the file.
func New(path string, level slog.Level) (*slog.Logger, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(handler), w
}

// Init installs the file logger as the process default.
func Init(path string, level slog.Level) io.Closer {
	logger, closer := New(path, level)
	slog.SetDefault(logger)

	return closer
}
