package logger

import (
	"io"
	"log/slog"
	"os"
)

var Log = slog.New(slog.NewJSONHandler(io.Discard, nil))

func Init(level slog.Level) {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
