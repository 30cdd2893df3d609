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

package syncmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncMap(t *testing.T) {
	t.Run("With set get and delete", func(t *testing.T) {
		sm := New[string, int]()
		sm.Set("a", 1)
		sm.Set("b", 2)

		value, ok := sm.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, value)

		assert.Equal(t, 2, sm.Len())

		sm.Delete("a")
		_, ok = sm.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 1, sm.Len())
	})
	t.Run("With GetOrSet", func(t *testing.T) {
		sm := New[string, int]()
		value, loaded := sm.GetOrSet("a", 1)
		require.False(t, loaded)
		assert.Equal(t, 1, value)

		value, loaded = sm.GetOrSet("a", 5)
		require.True(t, loaded)
		assert.Equal(t, 1, value)
	})
	t.Run("With Range and Keys", func(t *testing.T) {
		sm := New[string, int]()
		sm.Set("a", 1)
		sm.Set("b", 2)

		total := 0
		sm.Range(func(_ string, v int) {
			total += v
		})
		assert.Equal(t, 3, total)
		assert.ElementsMatch(t, []string{"a", "b"}, sm.Keys())
	})
	t.Run("With Reset", func(t *testing.T) {
		sm := New[string, int]()
		sm.Set("a", 1)
		sm.Reset()
		assert.Zero(t, sm.Len())
	})
	t.Run("With concurrent access", func(t *testing.T) {
		sm := New[int, int]()
		var wg sync.WaitGroup
		for i := range 100 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				sm.Set(n, n)
				sm.Get(n)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 100, sm.Len())
	})
}
