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

package aggregate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/holonhq/holon/errors"
)

func TestIdentity(t *testing.T) {
	t.Run("With a valid identity", func(t *testing.T) {
		id, err := NewIdentity("acme", "purchaseorder", "po-1029")
		require.NoError(t, err)
		assert.Equal(t, "acme", id.TenantID())
		assert.Equal(t, "purchaseorder", id.Kind())
		assert.Equal(t, "po-1029", id.EntityID())
		assert.Equal(t, "acme/purchaseorder/po-1029", id.String())
	})
	t.Run("With empty segments rejected", func(t *testing.T) {
		for _, segments := range [][3]string{
			{"", "purchaseorder", "po-1"},
			{"acme", "", "po-1"},
			{"acme", "purchaseorder", ""},
		} {
			_, err := NewIdentity(segments[0], segments[1], segments[2])
			assert.ErrorIs(t, err, herrors.ErrInvalidIdentity)
		}
	})
	t.Run("With the separator forbidden inside segments", func(t *testing.T) {
		_, err := NewIdentity("acme/eu", "purchaseorder", "po-1")
		assert.ErrorIs(t, err, herrors.ErrInvalidIdentity)
	})
	t.Run("With leading punctuation rejected", func(t *testing.T) {
		_, err := NewIdentity("acme", "purchaseorder", "-po-1")
		assert.ErrorIs(t, err, herrors.ErrInvalidIdentity)
	})
	t.Run("With oversized segments rejected", func(t *testing.T) {
		_, err := NewIdentity("acme", "purchaseorder", strings.Repeat("a", 256))
		assert.ErrorIs(t, err, herrors.ErrInvalidIdentity)
	})
	t.Run("With equality by value", func(t *testing.T) {
		a, err := NewIdentity("acme", "purchaseorder", "po-1")
		require.NoError(t, err)
		b, err := NewIdentity("acme", "purchaseorder", "po-1")
		require.NoError(t, err)
		c, err := NewIdentity("acme", "purchaseorder", "po-2")
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})
}

func TestParseIdentity(t *testing.T) {
	t.Run("With a round trip through the string form", func(t *testing.T) {
		id, err := NewIdentity("acme", "workorder", "wo-7")
		require.NoError(t, err)
		parsed, err := ParseIdentity(id.String())
		require.NoError(t, err)
		assert.True(t, id.Equal(parsed))
	})
	t.Run("With malformed strings rejected", func(t *testing.T) {
		for _, raw := range []string{"", "acme", "acme/workorder", "acme//wo-7"} {
			_, err := ParseIdentity(raw)
			assert.ErrorIs(t, err, herrors.ErrInvalidIdentity, "input %q", raw)
		}
	})
}
