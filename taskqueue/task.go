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
	"time"

	"github.com/tochemey/actorcore/promise"
)

// TaskFunc adapts a poll function into a Task.
type TaskFunc func(w Waker) bool

// enforce compilation error
var _ Task = TaskFunc(nil)

// Poll calls f(w).
func (f TaskFunc) Poll(w Waker) bool {
	return f(w)
}

// Done returns a Task that completes on its first poll.
func Done() Task {
	return TaskFunc(func(Waker) bool { return true })
}

// Once returns a Task running fn on its first poll and completing right away.
func Once(fn func()) Task {
	return TaskFunc(func(Waker) bool {
		fn()
		return true
	})
}

// promiseTask completes once its promise resolves.
type promiseTask[V any] struct {
	promise    *promise.Promise[V]
	then       func(V, error)
	registered bool
}

// FromPromise returns a Task that completes when p resolves, handing the
// outcome to then. then may be nil.
func FromPromise[V any](p *promise.Promise[V], then func(V, error)) Task {
	return &promiseTask[V]{promise: p, then: then}
}

func (t *promiseTask[V]) Poll(w Waker) bool {
	value, done, err := t.promise.TryGet()
	if done {
		if t.then != nil {
			t.then(value, err)
		}
		return true
	}

	// a task keeps its slot, hence its waker, until it completes
	if !t.registered {
		t.registered = true
		t.promise.OnComplete(w.Wake)
	}
	return false
}

// timerTask completes once its timer fired.
type timerTask struct {
	delay time.Duration
	then  func()
	timer *time.Timer
	fired atomic.Bool
}

// After returns a Task that completes once delay has elapsed since its first
// poll, then runs then. then may be nil. The timer wakes the task; nothing
// blocks while it waits.
func After(delay time.Duration, then func()) Task {
	return &timerTask{delay: delay, then: then}
}

func (t *timerTask) Poll(w Waker) bool {
	if t.timer == nil {
		if t.delay <= 0 {
			t.fired.Store(true)
		} else {
			t.timer = time.AfterFunc(t.delay, func() {
				t.fired.Store(true)
				w.Wake()
			})
		}
	}

	if !t.fired.Load() {
		return false
	}

	if t.then != nil {
		t.then()
	}
	return true
}
