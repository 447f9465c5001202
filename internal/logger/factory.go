package logger

import (
	"github.com/bastiangx/argcmd/pkg/config"
	"github.com/charmbracelet/log"
)

// ParseLevel maps a config level name to a log.Level, unknown names give WarnLevel.
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// SetGlobal applies cfg to charm's package-level logger, which config and
// utils log through.
func SetGlobal(cfg config.LogConfig) {
	log.SetLevel(ParseLevel(cfg.Level))
	log.SetReportTimestamp(cfg.Timestamp)
	log.SetReportCaller(cfg.Caller)
}
