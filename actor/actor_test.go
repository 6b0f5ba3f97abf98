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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	gerrors "github.com/tochemey/actorcore/errors"
	"github.com/tochemey/actorcore/log"
	"github.com/tochemey/actorcore/mailbox"
	"github.com/tochemey/actorcore/telemetry"
)

func TestActor(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("With every message handled before closure", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		sum := atomic.NewInt64(0)
		actor := New(mb, func(_ context.Context, n int) {
			sum.Add(int64(n))
		}, WithLogger(log.DiscardLogger), WithName("summer"))

		for i := 1; i <= 100; i++ {
			addr.Send(i)
		}
		addr.Release()

		require.NoError(t, actor.Run(context.Background()))
		assert.EqualValues(t, 5050, sum.Load())
		assert.Equal(t, "summer", actor.Name())
		assert.False(t, actor.IsRunning())
	})
	t.Run("With handlers running concurrently", func(t *testing.T) {
		const count = 10
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))

		started := new(sync.WaitGroup)
		started.Add(count)
		release := make(chan struct{})
		actor := New(mb, func(_ context.Context, _ int) {
			started.Done()
			<-release
		}, WithLogger(log.DiscardLogger))

		errc := make(chan error, 1)
		go func() {
			errc <- actor.Run(context.Background())
		}()

		for i := range count {
			addr.Send(i)
		}

		// every handler must be in flight at once for this to return
		started.Wait()
		close(release)
		addr.Release()

		select {
		case err := <-errc:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("actor did not stop")
		}
	})
	t.Run("With context cancellation", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		defer addr.Release()

		ctx, cancel := context.WithCancel(context.Background())
		handled := make(chan struct{})
		actor := New(mb, func(ctx context.Context, _ int) {
			close(handled)
			<-ctx.Done()
		}, WithLogger(log.DiscardLogger))

		errc := make(chan error, 1)
		go func() {
			errc <- actor.Run(ctx)
		}()

		addr.Send(1)
		<-handled
		cancel()

		select {
		case err := <-errc:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("actor did not stop")
		}
	})
	t.Run("With a panicking handler", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		handled := atomic.NewInt64(0)
		actor := New(mb, func(_ context.Context, n int) {
			if n%2 == 0 {
				panic("even")
			}
			handled.Inc()
		}, WithLogger(log.DiscardLogger))

		for i := range 10 {
			addr.Send(i)
		}
		addr.Release()

		require.NoError(t, actor.Run(context.Background()))
		assert.EqualValues(t, 5, handled.Load())
	})
	t.Run("With a second Run rejected", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		actor := New(mb, func(context.Context, int) {}, WithLogger(log.DiscardLogger))

		errc := make(chan error, 1)
		go func() {
			errc <- actor.Run(context.Background())
		}()

		require.Eventually(t, actor.IsRunning, time.Second, 5*time.Millisecond)
		require.ErrorIs(t, actor.Run(context.Background()), gerrors.ErrActorRunning)

		addr.Release()
		require.NoError(t, <-errc)
	})
	t.Run("With missing mailbox or handler", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		defer addr.Release()

		err := New[int](nil, func(context.Context, int) {}).Run(context.Background())
		require.ErrorIs(t, err, gerrors.ErrUndefinedMailbox)

		err = New(mb, nil).Run(context.Background())
		require.ErrorIs(t, err, gerrors.ErrUndefinedHandler)
	})
	t.Run("With a custom executor", func(t *testing.T) {
		mb, addr := mailbox.New[string](mailbox.WithLogger(log.DiscardLogger))
		submitted := 0
		var received []string
		executor := ExecutorFunc(func(task func()) {
			submitted++
			task()
		})

		actor := New(mb, func(_ context.Context, s string) {
			received = append(received, s)
		}, WithExecutor(executor), WithLogger(log.DiscardLogger))

		addr.Send("a")
		addr.Send("b")
		addr.Send("c")
		addr.Release()

		require.NoError(t, actor.Run(context.Background()))
		assert.Equal(t, 3, submitted)
		assert.Equal(t, []string{"a", "b", "c"}, received)
	})
	t.Run("With the consumer closed while running", func(t *testing.T) {
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger))
		defer addr.Release()
		actor := New(mb, func(context.Context, int) {}, WithExecutor(GoExecutor), WithLogger(log.DiscardLogger))

		errc := make(chan error, 1)
		go func() {
			errc <- actor.Run(context.Background())
		}()

		require.Eventually(t, actor.IsRunning, time.Second, 5*time.Millisecond)
		mb.Close()
		require.NoError(t, <-errc)
	})
	t.Run("With telemetry", func(t *testing.T) {
		tel := telemetry.New(telemetry.WithMeterProvider(noop.NewMeterProvider()))
		mb, addr := mailbox.New[int](mailbox.WithLogger(log.DiscardLogger), mailbox.WithTelemetry(tel))
		handled := atomic.NewInt64(0)
		actor := New(mb, func(context.Context, int) {
			handled.Inc()
		}, WithTelemetry(tel), WithLogger(log.DiscardLogger))
		require.NotNil(t, actor.metric)

		addr.Send(1)
		addr.Send(2)
		addr.Release()

		require.NoError(t, actor.Run(context.Background()))
		assert.EqualValues(t, 2, handled.Load())
	})
}

func TestToPanicError(t *testing.T) {
	t.Run("With an error value", func(t *testing.T) {
		cause := assert.AnError
		var pe *gerrors.PanicError
		func() {
			defer func() {
				pe = toPanicError(recover(), 2)
			}()
			panic(cause)
		}()
		require.NotNil(t, pe)
		assert.ErrorIs(t, pe, cause)
		assert.Contains(t, pe.Error(), "panic: ")
	})
	t.Run("With a PanicError value", func(t *testing.T) {
		cause := gerrors.NewPanicError(assert.AnError)
		var pe *gerrors.PanicError
		func() {
			defer func() {
				pe = toPanicError(recover(), 2)
			}()
			panic(cause)
		}()
		assert.Same(t, cause, pe)
	})
	t.Run("With a non error value", func(t *testing.T) {
		var pe *gerrors.PanicError
		func() {
			defer func() {
				pe = toPanicError(recover(), 2)
			}()
			panic("boom")
		}()
		require.NotNil(t, pe)
		assert.Contains(t, pe.Error(), `"boom" at `)
	})
}
