package observability

import (
	"log/slog"
	"os"

	"github.com/couchcryptid/hko-yesterday-etl/internal/config"
)

// NewLogger builds the slog logger from config. Progress lines and
// warnings go to stdout; format is "text" (default, CLI-friendly) or
// "json".
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
