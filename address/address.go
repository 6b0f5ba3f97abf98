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

// Package address provides the handle through which external code hands
// messages to an actor.
//
// An Address wraps exactly one Sender. Clones share that Sender and keep it
// alive through a reference count; releasing the last clone closes the Sender
// when it supports closing, which is how a mailbox learns that no producer is
// left. Addresses of a different message type are derived with Map and
// FilterMap without touching the underlying destination.
package address

import (
	"fmt"

	"go.uber.org/atomic"

	"github.com/tochemey/actorcore/log"
)

// destination is the state shared by every clone of an Address.
type destination[M any] struct {
	sender Sender[M]
	refs   *atomic.Int64
}

// Address is a cloneable handle to a Sender.
//
// Each handle is released at most once; Release on an already released handle
// is a no-op. Sending through a released handle is logged and dropped.
type Address[M any] struct {
	dest     *destination[M]
	released *atomic.Bool
	logger   log.Logger
}

// enforce compilation error
var _ Sender[int] = (*Address[int])(nil)

// New wraps sender into a fresh Address holding a single reference.
func New[M any](sender Sender[M], opts ...Option) *Address[M] {
	cfg := newConfig(opts...)
	return &Address[M]{
		dest: &destination[M]{
			sender: sender,
			refs:   atomic.NewInt64(1),
		},
		released: atomic.NewBool(false),
		logger:   cfg.logger,
	}
}

// Discard returns an Address that drops every message it receives.
func Discard[M any]() *Address[M] {
	return New[M](SenderFunc[M](func(M) {}), WithLogger(log.DiscardLogger))
}

// Send hands msg to the destination. It never blocks and never fails.
func (a *Address[M]) Send(msg M) {
	if a.released.Load() {
		a.logger.Warnf("send on released %s, message dropped", a)
		return
	}
	a.dest.sender.Send(msg)
}

// Clone returns a new handle sharing the same destination.
// Cloning a released handle yields a released handle.
func (a *Address[M]) Clone() *Address[M] {
	if a.released.Load() {
		return &Address[M]{
			dest:     a.dest,
			released: atomic.NewBool(true),
			logger:   a.logger,
		}
	}

	a.dest.refs.Inc()
	return &Address[M]{
		dest:     a.dest,
		released: atomic.NewBool(false),
		logger:   a.logger,
	}
}

// Release drops this handle's reference. When the last reference goes the
// destination is closed if it knows how to be.
func (a *Address[M]) Release() {
	if !a.released.CompareAndSwap(false, true) {
		return
	}

	if a.dest.refs.Dec() == 0 {
		if c, ok := a.dest.sender.(closer); ok {
			c.Close()
		}
	}
}

// Released reports whether this handle has been released.
func (a *Address[M]) Released() bool {
	return a.released.Load()
}

// Refs returns the number of live handles sharing the destination.
func (a *Address[M]) Refs() int64 {
	return a.dest.refs.Load()
}

// Same reports whether both handles point at the same destination.
func (a *Address[M]) Same(other *Address[M]) bool {
	return other != nil && a.dest == other.dest
}

// String renders the destination identity. It is meant for debugging only.
func (a *Address[M]) String() string {
	return fmt.Sprintf("address<%p>", a.dest)
}
