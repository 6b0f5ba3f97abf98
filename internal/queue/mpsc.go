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

package queue

import (
	"sync"
	"sync/atomic"
)

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// MPSC is an unbounded lock-free multi-producer single-consumer FIFO queue.
//
// Any number of goroutines may Push concurrently; exactly one goroutine may
// Pop. Items pushed by one producer are popped in the order that producer
// pushed them. Nodes are recycled through a pool to keep Push allocation-free
// in the steady state.
//
// reference: https://concurrencyfreaks.blogspot.com/2014/04/multi-producer-single-consumer-queue.html
type MPSC[T any] struct {
	// consumer side
	head atomic.Pointer[node[T]]
	_    [56]byte
	// producer side
	tail atomic.Pointer[node[T]]
	_    [56]byte

	length atomic.Int64
	pool   sync.Pool
}

// NewMPSC creates an instance of MPSC
func NewMPSC[T any]() *MPSC[T] {
	q := &MPSC[T]{
		pool: sync.Pool{New: func() any { return new(node[T]) }},
	}
	stub := new(node[T])
	q.head.Store(stub)
	q.tail.Store(stub)
	return q
}

// Push appends value to the tail of the queue. It never blocks.
func (q *MPSC[T]) Push(value T) {
	n := q.pool.Get().(*node[T])
	n.value = value
	n.next.Store(nil)

	// the length is raised before linking so that Len never goes negative
	q.length.Add(1)
	prev := q.tail.Swap(n)
	prev.next.Store(n)
}

// Pop removes the value at the head of the queue.
// It returns false when the queue is empty. Only the consumer may call Pop.
func (q *MPSC[T]) Pop() (T, bool) {
	var zero T
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		return zero, false
	}

	q.head.Store(next)
	value := next.value
	// next becomes the new stub; clear its payload so it is not retained
	next.value = zero
	q.length.Add(-1)

	head.next.Store(nil)
	q.pool.Put(head)
	return value, true
}

// Len returns the number of queued values. It may briefly count a value whose
// producer has not finished linking it.
func (q *MPSC[T]) Len() int64 {
	return q.length.Load()
}

// IsEmpty reports whether the consumer would currently find nothing to pop.
func (q *MPSC[T]) IsEmpty() bool {
	return q.head.Load().next.Load() == nil
}
