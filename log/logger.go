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

// Package log provides the leveled logging facade used across the runtime.
package log

import "io"

// Logger is the logging contract consumed by the runtime and the stores.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs at the DEBUG level.
	Debug(v ...any)
	// Debugf logs a formatted message at the DEBUG level.
	Debugf(format string, v ...any)
	// Info logs at the INFO level.
	Info(v ...any)
	// Infof logs a formatted message at the INFO level.
	Infof(format string, v ...any)
	// Warn logs at the WARN level.
	Warn(v ...any)
	// Warnf logs a formatted message at the WARN level.
	Warnf(format string, v ...any)
	// Error logs at the ERROR level.
	Error(v ...any)
	// Errorf logs a formatted message at the ERROR level.
	Errorf(format string, v ...any)
	// Fatal logs at the FATAL level followed by a call to os.Exit(1).
	Fatal(v ...any)
	// Fatalf logs a formatted message at the FATAL level followed by a call
	// to os.Exit(1).
	Fatalf(format string, v ...any)
	// LogLevel returns the minimum level the logger emits.
	LogLevel() Level
	// LogOutput returns the writers the logger emits to.
	LogOutput() []io.Writer
}
