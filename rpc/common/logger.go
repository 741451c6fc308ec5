package common

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// CreateLogger returns a prefixed logger with the application-wide format.
// Packages hold one at package level, e.g. `var logger = common.CreateLogger("rpc/client")`.
func CreateLogger(pkgName string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          pkgName,
		ReportTimestamp: true,
		Level:           log.GetLevel(),
	})
}

// ParseLogLevel converts a string level to a log.Level, defaulting to info
// for unknown values.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warning", "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// InitLoggers sets the global log level for all loggers created afterwards.
func InitLoggers(level string) {
	log.SetLevel(ParseLogLevel(level))
}
