/*
 * MIT License
 *
 * Copyright (c) 2024-2026 Holon Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With Info level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)

		logger.Info("info message")
		require.NoError(t, logger.Sync())

		assert.Contains(t, buffer.String(), "info message")
		assert.Contains(t, buffer.String(), "INFO")
		assert.Equal(t, InfoLevel, logger.LogLevel())
	})
	t.Run("With Debug suppressed at Info level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)

		logger.Debug("hidden")
		require.NoError(t, logger.Sync())

		assert.Empty(t, buffer.String())
	})
	t.Run("With formatted messages", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)

		logger.Debugf("value=%d", 42)
		logger.Infof("name=%s", "orders")
		logger.Warnf("count=%d", 7)
		logger.Errorf("oops=%v", "broken")
		require.NoError(t, logger.Sync())

		lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "value=42")
		assert.Contains(t, lines[1], "name=orders")
		assert.Contains(t, lines[2], "count=7")
		assert.Contains(t, lines[3], "oops=broken")
	})
	t.Run("With outputs", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.Len(t, logger.LogOutput(), 1)
	})
}

func TestDiscard(t *testing.T) {
	logger := DiscardLogger
	logger.Info("dropped")
	logger.Errorf("dropped=%d", 1)
	assert.Equal(t, InvalidLevel, logger.LogLevel())
	assert.Nil(t, logger.LogOutput())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", DebugLevel.String())
	assert.Equal(t, "info", InfoLevel.String())
	assert.Equal(t, "warning", WarningLevel.String())
	assert.Equal(t, "error", ErrorLevel.String())
	assert.Equal(t, "fatal", FatalLevel.String())
	assert.Equal(t, "", InvalidLevel.String())
}
