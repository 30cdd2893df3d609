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

// Package errors defines the sentinel errors and typed rejections shared
// across the runtime, the state stores and the aggregate behaviors.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntimeNotStarted is returned when a command is submitted before
	// the runtime has started or after it has stopped.
	ErrRuntimeNotStarted = errors.New("aggregate runtime has not started yet")

	// ErrKindNotRegistered is returned when an identity references an
	// aggregate kind no behavior was registered for.
	ErrKindNotRegistered = errors.New("aggregate kind is not registered")

	// ErrInvalidIdentity is returned when an identity segment is empty,
	// contains the separator or exceeds the allowed length.
	ErrInvalidIdentity = errors.New("invalid aggregate identity")

	// ErrEmptyCommand is returned when a nil command is submitted.
	ErrEmptyCommand = errors.New("command is not set")

	// ErrKeyNotFound indicates that no snapshot exists in the state store
	// for the requested key.
	ErrKeyNotFound = errors.New("state snapshot not found")

	// ErrCorruptSnapshot indicates that a stored snapshot could not be
	// decoded back into aggregate state.
	ErrCorruptSnapshot = errors.New("state snapshot is corrupt")

	// ErrStoreUnavailable indicates that the state store could not serve
	// the request. The operation is safe to retry.
	ErrStoreUnavailable = errors.New("state store is unavailable")

	// ErrRequestTimeout is returned when a command response did not arrive
	// within the configured ask timeout.
	ErrRequestTimeout = errors.New("command request timed out")

	// ErrMailboxFull is returned when a bounded mailbox rejects a command.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrSchedulerNotStarted is returned when a deferred command is
	// scheduled before the scheduler has started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started yet")
)

// NewErrInvalidIdentity wraps the validation failure behind
// ErrInvalidIdentity so callers can match on the sentinel.
func NewErrInvalidIdentity(err error) error {
	return errors.Join(ErrInvalidIdentity, err)
}

// NewErrCorruptSnapshot wraps the decoding failure behind ErrCorruptSnapshot.
func NewErrCorruptSnapshot(err error) error {
	return errors.Join(ErrCorruptSnapshot, err)
}

// NewErrStoreUnavailable wraps the driver failure behind ErrStoreUnavailable.
func NewErrStoreUnavailable(err error) error {
	return errors.Join(ErrStoreUnavailable, err)
}

// NewErrKindNotRegistered returns ErrKindNotRegistered enriched with the
// offending kind.
func NewErrKindNotRegistered(kind string) error {
	return fmt.Errorf("%w: %s", ErrKindNotRegistered, kind)
}
