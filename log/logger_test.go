package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LogLevelWarn)

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "error 4")
}

func TestDefaultLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LogLevelInfo)

	logger.Info("loaded graph")
	assert.True(t, strings.HasPrefix(buf.String(), "[vizscript] "))
}

func TestPackageLevelLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := GetDefaultLogger()
	defer SetDefaultLogger(prev)

	SetDefaultLogger(NewCustomLogger(&buf, LogLevelDebug))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	out := buf.String()
	for _, want := range []string{"[DEBUG] d", "[INFO] i", "[WARN] w", "[ERROR] e"} {
		assert.Contains(t, out, want)
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "NONE", LogLevelNone.String())
	assert.Contains(t, LogLevel(42).String(), "UNKNOWN")
}
