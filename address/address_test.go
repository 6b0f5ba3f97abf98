/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
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

package address

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/actorcore/log"
)

// recorder is a closable Sender collecting what it receives.
type recorder[M any] struct {
	mu     sync.Mutex
	msgs   []M
	closed int
}

func (r *recorder[M]) Send(msg M) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recorder[M]) Close() {
	r.mu.Lock()
	r.closed++
	r.mu.Unlock()
}

func (r *recorder[M]) received() []M {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]M, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func (r *recorder[M]) closeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func TestAddress(t *testing.T) {
	t.Run("With send delivers to the sender", func(t *testing.T) {
		rec := new(recorder[int])
		addr := New[int](rec)
		addr.Send(1)
		addr.Send(2)
		assert.Equal(t, []int{1, 2}, rec.received())
	})
	t.Run("With clones sharing the destination", func(t *testing.T) {
		rec := new(recorder[int])
		a := New[int](rec)
		b := a.Clone()
		c := b.Clone()

		require.True(t, a.Same(b))
		require.True(t, a.Same(c))
		require.Equal(t, a.String(), c.String())
		require.EqualValues(t, 3, a.Refs())

		a.Send(5)
		b.Send(6)
		c.Send(7)
		assert.Equal(t, []int{5, 6, 7}, rec.received())

		a.Release()
		b.Release()
		require.Zero(t, rec.closeCount())
		c.Release()
		require.Equal(t, 1, rec.closeCount())
	})
	t.Run("With release being idempotent per handle", func(t *testing.T) {
		rec := new(recorder[int])
		a := New[int](rec)
		b := a.Clone()

		a.Release()
		a.Release()
		require.EqualValues(t, 1, b.Refs())
		require.Zero(t, rec.closeCount())

		b.Release()
		require.Equal(t, 1, rec.closeCount())
	})
	t.Run("With send on a released handle logged and dropped", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		rec := new(recorder[int])
		a := New[int](rec, WithLogger(log.NewZap(log.WarningLevel, buffer)))
		a.Release()
		require.True(t, a.Released())

		require.NotPanics(t, func() { a.Send(1) })
		require.Empty(t, rec.received())
		require.True(t, strings.Contains(buffer.String(), "message dropped"))
	})
	t.Run("With clone of a released handle", func(t *testing.T) {
		rec := new(recorder[int])
		a := New[int](rec, WithLogger(log.DiscardLogger))
		a.Release()

		b := a.Clone()
		require.True(t, b.Released())
		b.Send(1)
		require.Empty(t, rec.received())
	})
	t.Run("With sender func", func(t *testing.T) {
		var got []string
		addr := New[string](SenderFunc[string](func(msg string) { got = append(got, msg) }))
		addr.Send("hello")
		addr.Release()
		assert.Equal(t, []string{"hello"}, got)
	})
	t.Run("With discard", func(t *testing.T) {
		addr := Discard[int]()
		require.NotPanics(t, func() { addr.Send(1) })
		addr.Release()
	})
}

func TestMap(t *testing.T) {
	t.Run("With transform applied", func(t *testing.T) {
		rec := new(recorder[string])
		dst := New[string](rec)
		mapped := Map[int, string](dst, strconv.Itoa)

		for i := range 5 {
			mapped.Send(i)
		}
		assert.Equal(t, []string{"0", "1", "2", "3", "4"}, rec.received())
	})
	t.Run("With adapter holding its own reference", func(t *testing.T) {
		rec := new(recorder[string])
		dst := New[string](rec)
		mapped := Map[int, string](dst, strconv.Itoa)

		dst.Release()
		require.Zero(t, rec.closeCount())
		mapped.Send(9)
		assert.Equal(t, []string{"9"}, rec.received())

		clone := mapped.Clone()
		mapped.Release()
		require.Zero(t, rec.closeCount())
		clone.Release()
		require.Equal(t, 1, rec.closeCount())
	})
	t.Run("With chained adapters", func(t *testing.T) {
		rec := new(recorder[int])
		dst := New[int](rec)
		doubled := Map[int, int](dst, func(n int) int { return n * 2 })
		parsed := FilterMap[string, int](doubled, func(s string) (int, bool) {
			n, err := strconv.Atoi(s)
			return n, err == nil
		})

		parsed.Send("21")
		parsed.Send("x")
		assert.Equal(t, []int{42}, rec.received())

		dst.Release()
		doubled.Release()
		parsed.Release()
		require.Equal(t, 1, rec.closeCount())
	})
}

func TestFilterMap(t *testing.T) {
	rec := new(recorder[int])
	dst := New[int](rec)
	evens := FilterMap[int, int](dst, func(n int) (int, bool) { return n, n%2 == 0 })

	for i := range 10 {
		evens.Send(i)
	}
	assert.Equal(t, []int{0, 2, 4, 6, 8}, rec.received())

	none := FilterMap[int, int](dst, func(int) (int, bool) { return 0, false })
	none.Send(1)
	assert.Len(t, rec.received(), 5)
}
