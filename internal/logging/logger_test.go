package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerWithWriter(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("BPFASM_LOG_LEVEL", "")
	t.Setenv("BPFASM_LOG_PREFIX", "")

	var buf bytes.Buffer
	lg := NewLoggerWithWriter(&buf, "bpfasm")
	assert.Equal(log.InfoLevel, lg.GetLevel())

	lg.Info("hello", "line", 3)
	assert.Contains(buf.String(), "bpfasm")
	assert.Contains(buf.String(), "hello")
	assert.Contains(buf.String(), "line=3")

	buf.Reset()
	lg.Debug("hidden")
	assert.Empty(buf.String())
}

func TestNewLoggerWithWriter_Env(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("BPFASM_LOG_LEVEL", "debug")
	t.Setenv("BPFASM_LOG_PREFIX", "custom")

	var buf bytes.Buffer
	lg := NewLoggerWithWriter(&buf, "bpfasm")
	assert.Equal(log.DebugLevel, lg.GetLevel())

	lg.Debug("shown")
	assert.Contains(buf.String(), "custom")
	assert.Contains(buf.String(), "shown")
}

func TestNewLoggerWithWriter_BadLevel(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("BPFASM_LOG_LEVEL", "chatty")

	lg := NewLoggerWithWriter(&bytes.Buffer{}, "bpfasm")
	assert.Equal(log.InfoLevel, lg.GetLevel())
}
