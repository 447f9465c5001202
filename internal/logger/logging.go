// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
package logger

import (
	"io"
	"os"

	"github.com/bastiangx/argcmd/pkg/config"
	"github.com/charmbracelet/log"
)

// New creates a new default charm log on stderr.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log from the [log] config section
func NewWithConfig(prefix string, cfg config.LogConfig, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           ParseLevel(cfg.Level),
		ReportCaller:    cfg.Caller,
		ReportTimestamp: cfg.Timestamp,
		Formatter:       log.TextFormatter,
	})
}
