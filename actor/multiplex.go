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
	"reflect"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/actorcore/errors"
	imetric "github.com/tochemey/actorcore/internal/metric"
	"github.com/tochemey/actorcore/log"
	"github.com/tochemey/actorcore/mailbox"
	"github.com/tochemey/actorcore/taskqueue"
)

// drainBatch bounds the messages received between two polls of the task queue
const drainBatch = 64

// Multiplex is the actor driving every in-flight handler computation from its
// own Run goroutine. The handler turns a message into a Task; tasks are
// started in dequeue order and may complete in any order.
//
// Tasks must not panic: they are polled in place on the Run goroutine.
type Multiplex[M any, T taskqueue.Task] struct {
	name     string
	mailbox  *mailbox.Mailbox[M]
	handler  func(M) T
	tasks    *taskqueue.TaskQueue[T]
	logger   log.Logger
	metric   *imetric.ActorMetric
	running  *atomic.Bool
	inflight *atomic.Int64
}

// NewMultiplex creates a Multiplex actor draining mb into handler.
func NewMultiplex[M any, T taskqueue.Task](mb *mailbox.Mailbox[M], handler func(M) T, opts ...Option) *Multiplex[M, T] {
	cfg := newConfig(opts...)
	return &Multiplex[M, T]{
		name:     cfg.name,
		mailbox:  mb,
		handler:  handler,
		tasks:    taskqueue.New[T](),
		logger:   cfg.logger.With("actor", cfg.name),
		metric:   actorMetric(cfg),
		running:  atomic.NewBool(false),
		inflight: atomic.NewInt64(0),
	}
}

// Name returns the actor name
func (a *Multiplex[M, T]) Name() string {
	return a.name
}

// IsRunning reports whether Run is in progress
func (a *Multiplex[M, T]) IsRunning() bool {
	return a.running.Load()
}

// Inflight returns the number of handler computations not yet complete
func (a *Multiplex[M, T]) Inflight() int64 {
	return a.inflight.Load()
}

// Run drives the actor until the mailbox is closed and every in-flight task
// has completed, then returns nil. When ctx is done first, every in-flight
// task is dropped in place and ctx.Err() is returned.
func (a *Multiplex[M, T]) Run(ctx context.Context) error {
	if a.mailbox == nil {
		return gerrors.ErrUndefinedMailbox
	}

	if a.handler == nil {
		return gerrors.ErrUndefinedHandler
	}

	if !a.running.CompareAndSwap(false, true) {
		return gerrors.ErrActorRunning
	}
	defer a.running.Store(false)

	a.logger.Debug("actor started")

	closed := false
	notify := a.mailbox.Notify()
	for {
		if err := ctx.Err(); err != nil {
			a.abort(ctx)
			return err
		}

		before := a.tasks.Len()
		a.tasks.Poll()
		a.settled(ctx, before-a.tasks.Len())

		// at most drainBatch messages per pass so woken tasks are repolled
		// even while producers outpace the actor
		backlog := false
	drain:
		for received := 0; !closed; received++ {
			if received == drainBatch {
				backlog = true
				break
			}

			msg, status := a.mailbox.TryRecv()
			switch status {
			case mailbox.Received:
				a.push(ctx, msg)
			case mailbox.Closed:
				closed = true
				notify = nil
			default:
				break drain
			}
		}

		if closed && a.tasks.IsEmpty() {
			a.logger.Debug("mailbox closed, actor stopped")
			return nil
		}

		if backlog {
			continue
		}

		select {
		case <-a.tasks.Wakeup():
		case <-notify:
		case <-ctx.Done():
			a.abort(ctx)
			return ctx.Err()
		}
	}
}

// push runs the handler and hands its task to the queue, which polls it once
func (a *Multiplex[M, T]) push(ctx context.Context, msg M) {
	task, ok := a.start(ctx, msg)
	if !ok || isNil(task) {
		a.completed(ctx, 1)
		return
	}

	before := a.tasks.Len()
	a.tasks.Push(task)
	if a.tasks.Len() == before {
		a.completed(ctx, 1)
		return
	}

	a.inflight.Inc()
	if a.metric != nil {
		a.metric.InflightCount().Add(ctx, 1)
	}
}

func (a *Multiplex[M, T]) start(ctx context.Context, msg M) (task T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := toPanicError(r, 2)
			a.logger.Errorf("handler panicked: %v", err)
			if a.metric != nil {
				a.metric.PanicCount().Add(ctx, 1)
			}
			ok = false
		}
	}()
	return a.handler(msg), true
}

// settled accounts for n queued tasks that completed on a repoll
func (a *Multiplex[M, T]) settled(ctx context.Context, n int) {
	if n <= 0 {
		return
	}

	a.inflight.Sub(int64(n))
	if a.metric != nil {
		a.metric.InflightCount().Add(ctx, -int64(n))
	}
	a.completed(ctx, n)
}

// completed accounts for n handler computations that finished
func (a *Multiplex[M, T]) completed(ctx context.Context, n int) {
	if n <= 0 {
		return
	}

	if a.metric != nil {
		a.metric.ProcessedCount().Add(ctx, int64(n))
	}
}

// abort drops every in-flight task
func (a *Multiplex[M, T]) abort(ctx context.Context) {
	dropped := a.tasks.Len()
	a.tasks.Clear()
	a.inflight.Store(0)
	if a.metric != nil && dropped > 0 {
		a.metric.InflightCount().Add(context.WithoutCancel(ctx), -int64(dropped))
	}
	a.logger.Warnf("actor stopped, %d in-flight task(s) dropped", dropped)
}

// isNil reports whether task is a nil interface, pointer, map, slice,
// channel or func
func isNil[T any](task T) bool {
	v := reflect.ValueOf(any(task))
	if !v.IsValid() {
		return true
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}
