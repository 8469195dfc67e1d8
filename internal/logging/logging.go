// Package logging builds the root slog.Logger for the console tools.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Options struct {
	Level  string // debug, info, warn or error
	Format string // text or json
	Output io.Writer
	Prefix string
}

// ParseLevel maps a level name to slog. Unknown names fall back to info with
// a warning on stderr.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "", "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		color.HiYellow("Unknown logging level: %s, defaulting to info", level)
		return slog.LevelInfo
	}
}

func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := ParseLevel(opts.Level)

	switch strings.ToLower(opts.Format) {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	case "", FormatText:
	default:
		color.HiYellow("Unknown logging format: %s, defaulting to text", opts.Format)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "counsel"
	}
	handler := log.NewWithOptions(out, log.Options{
		Level:           log.Level(level),
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return slog.New(handler)
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
