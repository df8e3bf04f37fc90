package config

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ParseLevel converts a level name into a log level. Empty means info.
func ParseLevel(level string) (log.Level, error) {
	if level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: log.level %q", ErrInvalid, level)
	}
	return lvl, nil
}

// NewLogger creates a timestamped logger with the given prefix at the configured level.
func (c LogConfig) NewLogger(w io.Writer, prefix string) *log.Logger {
	lvl, err := ParseLevel(c.Level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
}
