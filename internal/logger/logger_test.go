package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, debug bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebugMode(debug)
	buf.Reset()
	t.Cleanup(func() {
		SetDebugMode(false)
		SetOutput(os.Stdout)
	})
	return &buf
}

func TestDebugOnlyInDebugMode(t *testing.T) {
	buf := capture(t, false)
	Debug("hidden %d", 1)
	Info("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[INFO] shown 2")
	assert.False(t, IsDebugMode())

	buf = capture(t, true)
	Debug("visible %d", 3)
	assert.Contains(t, buf.String(), "[DEBUG] visible 3")
	assert.Contains(t, buf.String(), "logger_test.go", "short file points at the caller")
	assert.True(t, IsDebugMode())
}

func TestLogUpstreamRequestLevels(t *testing.T) {
	buf := capture(t, false)

	LogUpstreamRequest("/files/public", 200, time.Millisecond, nil)
	assert.Empty(t, buf.String())

	LogUpstreamRequest("/files/public", 403, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "[WARN] Pinata /files/public -> 403")

	LogUpstreamRequest("/files/public", 0, time.Millisecond, errors.New("refused"))
	assert.Contains(t, buf.String(), "[ERROR] Pinata /files/public failed")
	assert.Contains(t, buf.String(), "refused")
}
