package logger

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	_ = captureOutput(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := captureOutput(t, true)

	Debug("test message %s", "arg")

	out := buf.String()
	assert.Contains(t, out, "DBG")
	assert.Contains(t, out, "test message arg")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := captureOutput(t, false)

	Debug("test message")
	Info("info message")
	Warn("warn message")

	assert.Zero(t, buf.Len())
}

func TestSection(t *testing.T) {
	buf := captureOutput(t, true)

	Section("Test Section")

	assert.Equal(t, "\n=== Test Section ===\n", buf.String())
}

func TestInfo(t *testing.T) {
	buf := captureOutput(t, true)

	Info("info message %d", 42)

	assert.Contains(t, buf.String(), "INF")
	assert.Contains(t, buf.String(), "info message 42")
}

func TestWarn(t *testing.T) {
	buf := captureOutput(t, true)

	Warn("warning message")

	assert.Contains(t, buf.String(), "WRN")
	assert.Contains(t, buf.String(), "warning message")
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := captureOutput(t, false)

	Error(errors.New("boom"), "lookup %s failed", "makes")

	out := buf.String()
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "lookup makes failed")
	assert.Contains(t, out, "boom")
}

func TestComponent(t *testing.T) {
	buf := captureOutput(t, true)

	l := Component("catalog")
	l.Debug().Str("endpoint", "/makes").Msg("request")

	out := buf.String()
	assert.Contains(t, out, "component=catalog")
	assert.Contains(t, out, "endpoint=/makes")
	assert.Contains(t, out, "request")
}
