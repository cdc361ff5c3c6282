// Package logging hands out leveled loggers for the module.
package logging

import (
	"github.com/pion/logging"
)

var loggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a leveled logger for the given scope.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}

// SetLevel sets the default level for loggers created afterwards.
// Scope-specific levels from the PION_LOG_* environment variables still
// take precedence.
func SetLevel(level logging.LogLevel) {
	loggerFactory.DefaultLogLevel = level
}
