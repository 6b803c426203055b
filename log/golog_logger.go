package log

import (
	"fmt"

	"github.com/kataras/golog"
)

// GologLogger adapts a golog.Logger to the Logger interface, for hosts that
// already route their output through golog. The adapter formats the message
// itself and hands golog a single string, so golog's own formatting never
// interleaves with printf verbs.
type GologLogger struct {
	logger *golog.Logger
	level  LogLevel
}

var _ Logger = (*GologLogger)(nil)

// NewGologLogger wraps an existing golog.Logger at Info level. The wrapped
// logger keeps its own output and prefix configuration.
func NewGologLogger(logger *golog.Logger) *GologLogger {
	return &GologLogger{
		logger: logger,
		level:  LogLevelInfo,
	}
}

func (l *GologLogger) Debug(format string, v ...any) {
	if l.level <= LogLevelDebug {
		l.logger.Debug(fmt.Sprintf(format, v...))
	}
}

func (l *GologLogger) Info(format string, v ...any) {
	if l.level <= LogLevelInfo {
		l.logger.Info(fmt.Sprintf(format, v...))
	}
}

func (l *GologLogger) Warn(format string, v ...any) {
	if l.level <= LogLevelWarn {
		l.logger.Warn(fmt.Sprintf(format, v...))
	}
}

func (l *GologLogger) Error(format string, v ...any) {
	if l.level <= LogLevelError {
		l.logger.Error(fmt.Sprintf(format, v...))
	}
}

// SetLevel changes the adapter's level and keeps the wrapped golog level in
// sync, so messages logged directly on the golog instance filter the same
// way.
func (l *GologLogger) SetLevel(level LogLevel) {
	l.level = level
	l.logger.SetLevel(gologLevelName(level))
}

// GetLevel returns the adapter's level.
func (l *GologLogger) GetLevel() LogLevel {
	return l.level
}

func gologLevelName(level LogLevel) string {
	switch level {
	case LogLevelDebug:
		return "debug"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelNone:
		return "disable"
	}
	return "info"
}
