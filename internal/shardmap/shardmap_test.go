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

package shardmap

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardMap(t *testing.T) {
	t.Run("With set get and delete", func(t *testing.T) {
		m := New[int]()
		m.Set("one", 1)
		m.Set("two", 2)

		value, ok := m.Get("one")
		require.True(t, ok)
		assert.Equal(t, 1, value)
		assert.Equal(t, 2, m.Len())

		m.Delete("one")
		_, ok = m.Get("one")
		assert.False(t, ok)
	})
	t.Run("With DeleteIf", func(t *testing.T) {
		m := New[int]()
		m.Set("one", 1)

		removed := m.DeleteIf("one", func(v int) bool { return v == 2 })
		assert.False(t, removed)
		assert.Equal(t, 1, m.Len())

		removed = m.DeleteIf("one", func(v int) bool { return v == 1 })
		assert.True(t, removed)
		assert.Zero(t, m.Len())

		removed = m.DeleteIf("missing", func(int) bool { return true })
		assert.False(t, removed)
	})
	t.Run("With Range early stop", func(t *testing.T) {
		m := New[int]()
		for i := range 20 {
			m.Set(fmt.Sprintf("key-%d", i), i)
		}
		seen := 0
		m.Range(func(string, int) bool {
			seen++
			return seen < 5
		})
		assert.Equal(t, 5, seen)
	})
	t.Run("With concurrent writers", func(t *testing.T) {
		m := New[int]()
		var wg sync.WaitGroup
		for i := range 250 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				m.Set(fmt.Sprintf("key-%d", n), n)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 250, m.Len())

		m.Reset()
		assert.Zero(t, m.Len())
	})
}
