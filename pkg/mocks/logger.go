package mocks

import (
	"fmt"
	"sync"

	"github.com/user/cropaway/pkg/ports"
)

// Logger records formatted messages per level.
type Logger struct {
	mu     *sync.Mutex
	prefix string
	Lines  *[]LogLine
}

// LogLine is one recorded message.
type LogLine struct {
	Level   ports.LogLevel
	Message string
}

// NewLogger creates a recording logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, Lines: &[]LogLine{}}
}

func (l *Logger) record(level ports.LogLevel, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.Lines = append(*l.Lines, LogLine{Level: level, Message: l.prefix + fmt.Sprintf(msg, args...)})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.record(ports.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.record(ports.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.record(ports.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.record(ports.LevelError, msg, args...) }

// WithComponent returns a logger sharing the same record.
func (l *Logger) WithComponent(component string) ports.Logger {
	return &Logger{mu: l.mu, prefix: "[" + component + "] ", Lines: l.Lines}
}

// Messages returns the recorded messages at level.
func (l *Logger) Messages(level ports.LogLevel) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, line := range *l.Lines {
		if line.Level == level {
			out = append(out, line.Message)
		}
	}
	return out
}

var _ ports.Logger = (*Logger)(nil)
