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

// Package promise provides a single-value, single-delivery handshake.
//
// New returns a Promise, the receiving side, and a Return, the sending side.
// The Return delivers at most one value. The Promise may be cloned and every
// clone observes the same outcome: the value once it is sent, or ErrRecv once
// the Return is closed without a value.
//
//	p, ret := promise.New[int]()
//	go func() { ret.Send(42) }()
//	v, err := p.Await(ctx)
package promise

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"

	gerrors "github.com/tochemey/actorcore/errors"
)

const (
	stateEmpty int32 = iota
	stateResolved
	stateClosed
)

// cell is the write-once storage shared by a Return and its Promises.
//
// The semaphore starts without permits. Resolution writes the cell then
// releases the single permit; an awaiter acquires the permit and gives it
// straight back so every other awaiter passes too.
type cell[T any] struct {
	sem   *semaphore.Weighted
	state *atomic.Int32
	value T

	mu        sync.Mutex
	callbacks []func()
}

// Promise is the receiving side. Clones share the same cell.
type Promise[T any] struct {
	cell *cell[T]
}

// Return is the sending side. It delivers at most once.
type Return[T any] struct {
	cell *cell[T]
	once sync.Once
}

// New creates a connected Promise and Return.
func New[T any]() (*Promise[T], *Return[T]) {
	sem := semaphore.NewWeighted(1)
	// hold the only permit until resolution; cannot fail on a fresh semaphore
	_ = sem.Acquire(context.Background(), 1)

	c := &cell[T]{
		sem:   sem,
		state: atomic.NewInt32(stateEmpty),
	}
	return &Promise[T]{cell: c}, &Return[T]{cell: c}
}

// Send delivers value to every Promise clone. It returns false when the Return
// has already been used.
func (r *Return[T]) Send(value T) bool {
	sent := false
	r.once.Do(func() {
		r.cell.value = value
		r.cell.resolve(stateResolved)
		sent = true
	})
	return sent
}

// Close resolves the Promise as closed when nothing was sent. Calling Close
// after Send is a no-op, so it is safe to defer.
func (r *Return[T]) Close() {
	r.once.Do(func() {
		r.cell.resolve(stateClosed)
	})
}

func (c *cell[T]) resolve(state int32) {
	c.state.Store(state)
	c.sem.Release(1)

	c.mu.Lock()
	callbacks := c.callbacks
	c.callbacks = nil
	c.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

// Await blocks until the Promise resolves or ctx is done.
// It returns the sent value, ErrRecv when the Return was closed unused, or the
// context error.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	if p.cell.state.Load() == stateEmpty {
		if err := p.cell.sem.Acquire(ctx, 1); err != nil {
			var zero T
			return zero, err
		}
		p.cell.sem.Release(1)
	}
	return p.outcome()
}

// TryGet returns the outcome without blocking. done is false while the
// Promise is unresolved.
func (p *Promise[T]) TryGet() (value T, done bool, err error) {
	if p.cell.state.Load() == stateEmpty {
		return value, false, nil
	}
	value, err = p.outcome()
	return value, true, err
}

// IsDone reports whether the Promise has resolved
func (p *Promise[T]) IsDone() bool {
	return p.cell.state.Load() != stateEmpty
}

// Clone returns another Promise observing the same outcome.
func (p *Promise[T]) Clone() *Promise[T] {
	return &Promise[T]{cell: p.cell}
}

// OnComplete registers callback to run once the Promise resolves. It runs
// immediately, on the calling goroutine, when the Promise already resolved;
// otherwise it runs on the goroutine that resolves it.
func (p *Promise[T]) OnComplete(callback func()) {
	c := p.cell
	c.mu.Lock()
	if c.state.Load() == stateEmpty {
		c.callbacks = append(c.callbacks, callback)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	callback()
}

func (p *Promise[T]) outcome() (T, error) {
	if p.cell.state.Load() == stateClosed {
		var zero T
		return zero, gerrors.ErrRecv
	}
	return p.cell.value, nil
}
