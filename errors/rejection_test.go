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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejection(t *testing.T) {
	t.Run("With the code and message in the error string", func(t *testing.T) {
		rejection := Reject(CodeInvalidTransition, "cannot submit an order in status %s", "Closed")
		assert.Equal(t, CodeInvalidTransition, rejection.Code)
		assert.EqualError(t, rejection, "InvalidTransition: cannot submit an order in status Closed")
	})
	t.Run("With AsRejection through a wrapped chain", func(t *testing.T) {
		wrapped := fmt.Errorf("dispatch: %w", Reject(CodeRateLimited, "tenant acme over limit"))
		rejection, ok := AsRejection(wrapped)
		require.True(t, ok)
		assert.Equal(t, CodeRateLimited, rejection.Code)
	})
	t.Run("With plain errors not mistaken for rejections", func(t *testing.T) {
		_, ok := AsRejection(errors.New("disk on fire"))
		assert.False(t, ok)
		assert.False(t, HasCode(errors.New("disk on fire"), CodeInternal))
	})
	t.Run("With HasCode matching only its code", func(t *testing.T) {
		err := Reject(CodeCurrencyMismatch, "order is USD, got EUR")
		assert.True(t, HasCode(err, CodeCurrencyMismatch))
		assert.False(t, HasCode(err, CodeInvalidArgument))
	})
	t.Run("With CodeOf falling back to Internal", func(t *testing.T) {
		assert.Equal(t, CodeNotFound, CodeOf(Reject(CodeNotFound, "no such aggregate")))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestSentinelWrappers(t *testing.T) {
	t.Run("With invalid identities matching the sentinel", func(t *testing.T) {
		err := NewErrInvalidIdentity(errors.New("tenant id is required"))
		assert.ErrorIs(t, err, ErrInvalidIdentity)
		assert.Contains(t, err.Error(), "tenant id is required")
	})
	t.Run("With corrupt snapshots matching the sentinel", func(t *testing.T) {
		err := NewErrCorruptSnapshot(errors.New("unexpected end of JSON input"))
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})
	t.Run("With store faults matching the sentinel", func(t *testing.T) {
		err := NewErrStoreUnavailable(errors.New("connection refused"))
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
	t.Run("With the offending kind in the registration error", func(t *testing.T) {
		err := NewErrKindNotRegistered("ghost")
		assert.ErrorIs(t, err, ErrKindNotRegistered)
		assert.Contains(t, err.Error(), "ghost")
	})
}
