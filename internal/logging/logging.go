// Package logging builds the hclog loggers used across the launcher core.
// Every component logger is named lodestone.<area> so one launch's output
// groups naturally when filtered.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

const rootName = "lodestone"

// New creates the launcher's root logger. Output defaults to stderr so the
// spawned game's stdout stays clean for the player.
func New(level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       rootName,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv("LODESTONE_JSON_LOG") == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ForArea returns the named sub-logger for one launcher area (launch,
// download, natives, ...).
func ForArea(logger hclog.Logger, area string) hclog.Logger {
	if logger == nil {
		return hclog.NewNullLogger()
	}
	return logger.Named(area)
}

// Level returns the configured log level, preferring the explicit value and
// falling back to the environment, then to warn.
func Level(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("LODESTONE_LOG_LEVEL"); env != "" {
		return env
	}
	return "warn"
}
