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

package persistence

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/holonhq/holon/errors"
)

func TestPack(t *testing.T) {
	t.Run("With small payloads stored raw", func(t *testing.T) {
		data := []byte(`{"value":42}`)
		packed, err := Pack(data)
		require.NoError(t, err)
		assert.Equal(t, formatRaw, packed[0])

		unpacked, err := Unpack(packed)
		require.NoError(t, err)
		assert.Equal(t, data, unpacked)
	})
	t.Run("With large payloads compressed", func(t *testing.T) {
		data := bytes.Repeat([]byte(`{"sku":"bolt-m8","quantity":12}`), 100)
		packed, err := Pack(data)
		require.NoError(t, err)
		assert.Equal(t, formatZstd, packed[0])
		assert.Less(t, len(packed), len(data))

		unpacked, err := Unpack(packed)
		require.NoError(t, err)
		assert.Equal(t, data, unpacked)
	})
	t.Run("With an empty payload packing cleanly", func(t *testing.T) {
		packed, err := Pack(nil)
		require.NoError(t, err)
		unpacked, err := Unpack(packed)
		require.NoError(t, err)
		assert.Empty(t, unpacked)
	})
}

func TestUnpackCorrupt(t *testing.T) {
	t.Run("With an empty buffer", func(t *testing.T) {
		_, err := Unpack(nil)
		assert.ErrorIs(t, err, herrors.ErrCorruptSnapshot)
	})
	t.Run("With an unknown format tag", func(t *testing.T) {
		_, err := Unpack([]byte{0x7F, 'x'})
		assert.ErrorIs(t, err, herrors.ErrCorruptSnapshot)
	})
	t.Run("With a truncated compressed body", func(t *testing.T) {
		data := bytes.Repeat([]byte("abcdefgh"), 200)
		packed, err := Pack(data)
		require.NoError(t, err)
		require.Equal(t, formatZstd, packed[0])

		_, err = Unpack(packed[:len(packed)/2])
		assert.ErrorIs(t, err, herrors.ErrCorruptSnapshot)
	})
}
