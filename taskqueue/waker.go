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

package taskqueue

import (
	"sync/atomic"
)

// signal is the wake shared by every block of a TaskQueue. Its channel holds
// at most one token, so any number of wakes between two polls of the owner
// collapse into a single wake-up.
type signal struct {
	ch chan struct{}
}

func newSignal() *signal {
	return &signal{ch: make(chan struct{}, 1)}
}

func (s *signal) wake() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// wakeState is the part of a block that wakers touch. It is the only state a
// waker may reach from an arbitrary goroutine.
type wakeState struct {
	// poll holds one bit per slot that must be polled again
	poll   atomic.Uint64
	signal *signal
}

// Waker routes a wake-up to exactly one slot of one block.
//
// A Waker is a small value: copying it clones it, and it needs no explicit
// drop. It keeps its block reachable for as long as it is retained, so it is
// always safe to call Wake, even after the queue discarded the block or was
// cleared. A wake for a slot that no longer holds pending work only causes a
// spurious wake-up of the owner.
//
// The zero Waker is valid and does nothing.
type Waker struct {
	state *wakeState
	bit   uint64
}

// Wake marks the slot for polling and wakes the owner of the queue.
// It is safe to call from any goroutine, any number of times.
func (w Waker) Wake() {
	if w.state == nil {
		return
	}
	w.state.poll.Or(w.bit)
	w.state.signal.wake()
}
