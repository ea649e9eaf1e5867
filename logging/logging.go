package logging

import (
	"log/slog"
	"os"
)

// New builds the JSON logger used across the service. Installed as the
// slog default in main so fire-and-forget paths can log without plumbing.
func New() *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(h).With("service", "medicure-api")
}
