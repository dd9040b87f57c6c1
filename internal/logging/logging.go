// Package logging hands out the scoped pion loggers used across the module.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pion/logging"
)

var (
	loggerFactory = logging.NewDefaultLoggerFactory()

	mu      sync.Mutex
	loggers []*logging.DefaultLeveledLogger
)

// NewLogger returns a leveled logger for scope. Levels are controlled with
// the PION_LOG_TRACE, PION_LOG_DEBUG, PION_LOG_INFO, PION_LOG_WARN and
// PION_LOG_ERROR environment variables until SetLevel is called.
func NewLogger(scope string) logging.LeveledLogger {
	l := loggerFactory.NewLogger(scope)
	if dl, ok := l.(*logging.DefaultLeveledLogger); ok {
		mu.Lock()
		loggers = append(loggers, dl)
		mu.Unlock()
	}
	return l
}

// SetLevel changes the level of every logger, including the ones created
// before the call.
func SetLevel(level logging.LogLevel) {
	mu.Lock()
	defer mu.Unlock()

	loggerFactory.DefaultLogLevel = level
	for _, l := range loggers {
		l.SetLevel(level)
	}
}

var levels = map[string]logging.LogLevel{
	"disabled": logging.LogLevelDisabled,
	"error":    logging.LogLevelError,
	"warn":     logging.LogLevelWarn,
	"info":     logging.LogLevelInfo,
	"debug":    logging.LogLevelDebug,
	"trace":    logging.LogLevelTrace,
}

// ParseLevel parses a level name such as "debug", ignoring case.
func ParseLevel(name string) (logging.LogLevel, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return logging.LogLevelDisabled, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
