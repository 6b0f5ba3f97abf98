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

package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/tochemey/actorcore/log"
	"github.com/tochemey/actorcore/mailbox"
	"github.com/tochemey/actorcore/promise"
	"github.com/tochemey/actorcore/taskqueue"
)

type request struct {
	value int
	reply *promise.Return[int]
}

// countingTask completes on its first poll
type countingTask struct {
	polled *atomic.Int64
}

func (c *countingTask) Poll(taskqueue.Waker) bool {
	c.polled.Inc()
	return true
}

func runMultiplex[M any, T taskqueue.Task](ctx context.Context, actor *Multiplex[M, T]) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- actor.Run(ctx)
	}()
	return errc
}

func waitFor(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("actor did not stop")
		return nil
	}
}

func TestMultiplex(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("With immediate tasks", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		sum := 0
		actor := NewMultiplex(mb, func(n int) taskqueue.Task {
			return taskqueue.Once(func() { sum += n })
		}, WithLogger(log.DiscardLogger), WithName("summer"))

		for i := 1; i <= 100; i++ {
			addr.Send(i)
		}
		addr.Release()

		require.NoError(t, actor.Run(context.Background()))
		assert.Equal(t, 5050, sum)
		assert.Zero(t, actor.Inflight())
		assert.Equal(t, "summer", actor.Name())
	})
	t.Run("With tasks completing out of order", func(t *testing.T) {
		const count = 100
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))

		promises := make([]*promise.Promise[int], count)
		returns := make([]*promise.Return[int], count)
		for i := range count {
			promises[i], returns[i] = promise.New[int]()
		}

		var completed []int
		actor := NewMultiplex(mb, func(i int) taskqueue.Task {
			return taskqueue.FromPromise(promises[i], func(v int, err error) {
				if err == nil {
					completed = append(completed, v)
				}
			})
		}, WithLogger(log.DiscardLogger))

		errc := runMultiplex(context.Background(), actor)
		for i := range count {
			addr.Send(i)
		}

		// more tasks than one block holds
		require.Eventually(t, func() bool { return actor.Inflight() == count }, 5*time.Second, 5*time.Millisecond)

		for i := count - 1; i >= 0; i-- {
			returns[i].Send(i)
		}
		addr.Release()

		require.NoError(t, waitFor(t, errc))
		require.Len(t, completed, count)
		assert.ElementsMatch(t, func() []int {
			out := make([]int, count)
			for i := range out {
				out[i] = i
			}
			return out
		}(), completed)
		assert.Zero(t, actor.Inflight())
	})
	t.Run("With a slow task not blocking the others", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		slow, slowReturn := promise.New[struct{}]()
		done := atomic.NewInt64(0)

		actor := NewMultiplex(mb, func(i int) taskqueue.Task {
			if i == 0 {
				return taskqueue.FromPromise(slow, func(struct{}, error) { done.Inc() })
			}
			return taskqueue.After(time.Millisecond, func() { done.Inc() })
		}, WithLogger(log.DiscardLogger))

		errc := runMultiplex(context.Background(), actor)
		for i := range 10 {
			addr.Send(i)
		}
		addr.Release()

		require.Eventually(t, func() bool { return done.Load() == 9 }, 5*time.Second, 5*time.Millisecond)
		require.Eventually(t, func() bool { return actor.Inflight() == 1 }, 5*time.Second, 5*time.Millisecond)

		slowReturn.Send(struct{}{})
		require.NoError(t, waitFor(t, errc))
		assert.EqualValues(t, 10, done.Load())
	})
	t.Run("With request and response", func(t *testing.T) {
		mb, addr := mailbox.New[request](mailbox.WithLogger(log.DiscardLogger))
		actor := NewMultiplex(mb, func(req request) taskqueue.Task {
			return taskqueue.After(time.Millisecond, func() {
				req.reply.Send(req.value * 2)
			})
		}, WithLogger(log.DiscardLogger))

		errc := runMultiplex(context.Background(), actor)

		ctx := context.Background()
		for i := range 5 {
			p, r := promise.New[int]()
			addr.Send(request{value: i, reply: r})
			value, err := p.Await(ctx)
			require.NoError(t, err)
			assert.Equal(t, i*2, value)
		}

		addr.Release()
		require.NoError(t, waitFor(t, errc))
	})
	t.Run("With context cancellation dropping in-flight tasks", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		defer addr.Release()

		never, neverReturn := promise.New[int]()
		defer neverReturn.Close()

		actor := NewMultiplex(mb, func(int) taskqueue.Task {
			return taskqueue.FromPromise(never.Clone(), nil)
		}, WithLogger(log.DiscardLogger))

		ctx, cancel := context.WithCancel(context.Background())
		errc := runMultiplex(ctx, actor)
		for i := range 3 {
			addr.Send(i)
		}

		require.Eventually(t, func() bool { return actor.Inflight() == 3 }, 5*time.Second, 5*time.Millisecond)
		cancel()

		require.ErrorIs(t, waitFor(t, errc), context.Canceled)
		assert.Zero(t, actor.Inflight())
		assert.False(t, actor.IsRunning())
	})
	t.Run("With a panicking handler", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		handled := 0
		actor := NewMultiplex(mb, func(n int) taskqueue.Task {
			if n == 3 {
				panic("three")
			}
			return taskqueue.Once(func() { handled++ })
		}, WithLogger(log.DiscardLogger))

		for i := range 5 {
			addr.Send(i)
		}
		addr.Release()

		require.NoError(t, actor.Run(context.Background()))
		assert.Equal(t, 4, handled)
	})
	t.Run("With a nil task", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		actor := NewMultiplex(mb, func(int) taskqueue.Task { return nil }, WithLogger(log.DiscardLogger))

		addr.Send(1)
		addr.Release()

		require.NoError(t, actor.Run(context.Background()))
	})
	t.Run("With a nil pointer task", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		polled := atomic.NewInt64(0)
		actor := NewMultiplex(mb, func(n int) *countingTask {
			if n%2 == 0 {
				return nil
			}
			return &countingTask{polled: polled}
		}, WithLogger(log.DiscardLogger))

		for i := range 10 {
			addr.Send(i)
		}
		addr.Release()

		require.NoError(t, actor.Run(context.Background()))
		assert.EqualValues(t, 5, polled.Load())
		assert.Zero(t, actor.Inflight())
	})
	t.Run("With producers flooding the mailbox", func(t *testing.T) {
		const producers = 4
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))

		pending, pendingReturn := promise.New[int]()
		resolved := atomic.NewBool(false)
		actor := NewMultiplex(mb, func(n int) taskqueue.Task {
			if n < 0 {
				return taskqueue.FromPromise(pending, func(int, error) { resolved.Store(true) })
			}
			return taskqueue.Done()
		}, WithLogger(log.DiscardLogger))

		errc := runMultiplex(context.Background(), actor)
		addr.Send(-1)
		require.Eventually(t, func() bool { return actor.Inflight() == 1 }, 5*time.Second, time.Millisecond)

		stop := atomic.NewBool(false)
		stopped := make(chan struct{}, producers)
		for range producers {
			sender := addr.Clone()
			go func() {
				defer func() { stopped <- struct{}{} }()
				defer sender.Release()
				for i := 0; !stop.Load(); i++ {
					sender.Send(i)
				}
			}()
		}

		pendingReturn.Send(7)
		assert.Eventually(t, resolved.Load, 5*time.Second, time.Millisecond)

		stop.Store(true)
		for range producers {
			<-stopped
		}
		addr.Release()

		require.NoError(t, waitFor(t, errc))
		assert.True(t, resolved.Load())
		assert.Zero(t, actor.Inflight())
	})
	t.Run("With an already closed mailbox", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		addr.Release()

		actor := NewMultiplex(mb, func(int) taskqueue.Task { return taskqueue.Done() }, WithLogger(log.DiscardLogger))
		require.NoError(t, actor.Run(context.Background()))
	})
}
