package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

// LogLevel orders message severities. A logger drops everything below its
// active level before formatting, so disabled levels cost only the compare.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError

	// LogLevelNone sits above every severity and silences the logger.
	LogLevelNone
)

// String returns the level tag used in message prefixes.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(l))
}

// Logger is the printf-style leveled interface the rest of the module logs
// through. The graph loader reports per-node resolution failures on Error;
// the importer reports batch progress on Info.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// DefaultLogger writes tagged lines through the standard library's log
// package, which serializes writes, so it is safe for concurrent use.
type DefaultLogger struct {
	logger *log.Logger
	level  LogLevel
}

// NewDefaultLogger returns a logger writing to stderr.
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return NewCustomLogger(os.Stderr, level)
}

// NewCustomLogger returns a logger writing to out. Tests use this to capture
// output.
func NewCustomLogger(out io.Writer, level LogLevel) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(out, "[vizscript] ", log.LstdFlags),
		level:  level,
	}
}

func (l *DefaultLogger) printf(level LogLevel, format string, v ...any) {
	if l.level <= level {
		l.logger.Printf("["+level.String()+"] "+format, v...)
	}
}

func (l *DefaultLogger) Debug(format string, v ...any) {
	l.printf(LogLevelDebug, format, v...)
}

func (l *DefaultLogger) Info(format string, v ...any) {
	l.printf(LogLevelInfo, format, v...)
}

func (l *DefaultLogger) Warn(format string, v ...any) {
	l.printf(LogLevelWarn, format, v...)
}

func (l *DefaultLogger) Error(format string, v ...any) {
	l.printf(LogLevelError, format, v...)
}

// NoOpLogger discards everything. Tests install it as the default logger so
// expected decode failures don't clutter their output.
type NoOpLogger struct{}

func (NoOpLogger) Debug(format string, v ...any) {}
func (NoOpLogger) Info(format string, v ...any)  {}
func (NoOpLogger) Warn(format string, v ...any)  {}
func (NoOpLogger) Error(format string, v ...any) {}

// defaultLogger backs the package-level functions. Info level by default;
// callers that want decode diagnostics lower it to Debug.
var defaultLogger Logger = NewDefaultLogger(LogLevelInfo)

// SetDefaultLogger replaces the logger behind the package-level functions.
func SetDefaultLogger(logger Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the logger behind the package-level functions.
func GetDefaultLogger() Logger {
	return defaultLogger
}

// SetLogLevel installs a fresh stderr default logger at the given level.
func SetLogLevel(level LogLevel) {
	defaultLogger = NewDefaultLogger(level)
}

// Debug logs through the package-level logger.
func Debug(format string, v ...any) { defaultLogger.Debug(format, v...) }

// Info logs through the package-level logger.
func Info(format string, v ...any) { defaultLogger.Info(format, v...) }

// Warn logs through the package-level logger.
func Warn(format string, v ...any) { defaultLogger.Warn(format, v...) }

// Error logs through the package-level logger.
func Error(format string, v ...any) { defaultLogger.Error(format, v...) }
