// Package ports defines the interfaces between the export pipeline and the
// outside world: the transcoder, the file system, masks and logging.
package ports

import "fmt"

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for per-segment and per-process details.
	LevelDebug LogLevel = iota
	// LevelInfo is for export-level progress.
	LevelInfo
	// LevelWarn is for degraded results, such as a mask that failed to decode.
	LevelWarn
	// LevelError is for failures that abort an export.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = []string{"debug", "info", "warn", "error", "quiet"}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name.
func ParseLogLevel(s string) (LogLevel, error) {
	for i, name := range levelNames {
		if name == s {
			return LogLevel(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger abstracts logging operations with multi-language support.
// msg is a message key that adapters may translate; args are format arguments.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with the component name.
	WithComponent(component string) Logger
}
