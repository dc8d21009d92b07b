// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCapturedLogger() (*StandardLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &StandardLogger{Logger: log.New(&buf, "", 0)}, &buf
}

func TestLogging_Levels(t *testing.T) {
	logger, buf := newCapturedLogger()

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] debug message")
	assert.Contains(t, out, "[INFO] info message")
	assert.Contains(t, out, "[WARN] warn message")
	assert.Contains(t, out, "[ERROR] error message")
}

func TestLogging_Fields(t *testing.T) {
	logger, buf := newCapturedLogger()

	logger.Info("handshake",
		Field{Key: "security_type", Value: uint8(30)},
		Field{Key: "method", Value: "Apple Remote Desktop"},
		Field{Key: "error", Value: errors.New("short read")},
	)

	out := buf.String()
	assert.Contains(t, out, "security_type=30")
	assert.Contains(t, out, `method="Apple Remote Desktop"`)
	assert.Contains(t, out, `error="short read"`)
}

func TestLogging_With(t *testing.T) {
	logger, buf := newCapturedLogger()

	child := logger.With(Field{Key: "conn", Value: "test"})
	child.Info("decoded rectangle", Field{Key: "encoding", Value: "hextile"})

	out := buf.String()
	assert.Contains(t, out, "conn=test")
	assert.Contains(t, out, "encoding=hextile")

	// The parent logger is unaffected.
	buf.Reset()
	logger.Info("plain")
	assert.False(t, strings.Contains(buf.String(), "conn=test"))
}

func TestLogging_NoOp(t *testing.T) {
	logger := &NoOpLogger{}

	// All calls discard silently.
	logger.Debug("msg")
	logger.Info("msg", Field{Key: "k", Value: "v"})
	logger.Warn("msg")
	logger.Error("msg")

	child := logger.With(Field{Key: "k", Value: "v"})
	assert.NotNil(t, child)
	child.Info("msg")
}
