package logger

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/user/cropaway/pkg/ports"
)

// HCLogger adapts hclog to ports.Logger for structured, untranslated output.
type HCLogger struct {
	log hclog.Logger
}

// NewHCLog creates a structured logger. json selects JSON lines over the
// default key=value format.
func NewHCLog(level ports.LogLevel, w io.Writer, json bool) *HCLogger {
	return &HCLogger{log: hclog.New(&hclog.LoggerOptions{
		Name:       "cropaway",
		Level:      hclogLevel(level),
		Output:     w,
		JSONFormat: json,
	})}
}

func hclogLevel(level ports.LogLevel) hclog.Level {
	switch level {
	case ports.LevelDebug:
		return hclog.Debug
	case ports.LevelInfo:
		return hclog.Info
	case ports.LevelWarn:
		return hclog.Warn
	case ports.LevelError:
		return hclog.Error
	default:
		return hclog.Off
	}
}

func (l *HCLogger) Debug(msg string, args ...interface{}) { l.log.Debug(fmt.Sprintf(msg, args...)) }
func (l *HCLogger) Info(msg string, args ...interface{})  { l.log.Info(fmt.Sprintf(msg, args...)) }
func (l *HCLogger) Warn(msg string, args ...interface{})  { l.log.Warn(fmt.Sprintf(msg, args...)) }
func (l *HCLogger) Error(msg string, args ...interface{}) { l.log.Error(fmt.Sprintf(msg, args...)) }

// WithComponent returns a sub-logger named after the component.
func (l *HCLogger) WithComponent(component string) ports.Logger {
	return &HCLogger{log: l.log.Named(component)}
}

var (
	_ ports.Logger = (*HCLogger)(nil)
	_ ports.Logger = (*ConsoleLogger)(nil)
	_ ports.Logger = (*NoopLogger)(nil)
)
