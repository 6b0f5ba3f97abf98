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

// Package taskqueue drives many in-flight computations from one owner without
// giving each its own goroutine.
//
// A computation is a Task: a state machine advanced by Poll. Poll reports true
// once the task is complete. A task that cannot make progress returns false and
// arranges for the Waker it was handed to be called once it can. The queue then
// repolls only the tasks whose wakers fired.
//
// Tasks are stored in place, in blocks of 64 slots. A block tracks which slots
// hold incomplete tasks and, in an atomic mask, which slots were woken. When
// every block is full a new one is chained on; trailing blocks that drain are
// discarded again. All wakes, whichever block they hit, collapse into one
// signal on the Wakeup channel.
//
// A TaskQueue is driven by a single goroutine: Push, Poll and Clear must not be
// called concurrently. Wakers may fire from any goroutine.
package taskqueue

// Task is a computation advanced by repeated polling.
type Task interface {
	// Poll advances the task and reports whether it completed. When it returns
	// false the task must make sure w.Wake is eventually called once polling
	// again can make progress. A completed task is never polled again.
	Poll(w Waker) bool
}

// TaskQueue holds in-flight tasks of one type.
type TaskQueue[T Task] struct {
	// blocks is an arena of fixed-size blocks; the first one is never discarded
	blocks []*block[T]
	signal *signal
}

// New creates an empty TaskQueue with a single block.
func New[T Task]() *TaskQueue[T] {
	sig := newSignal()
	return &TaskQueue[T]{
		blocks: []*block[T]{newBlock[T](sig)},
		signal: sig,
	}
}

// Push stores task in the first free slot and polls it once. A task that
// completes at once consumes no slot. When every block is full a new block is
// appended.
func (q *TaskQueue[T]) Push(task T) {
	for _, b := range q.blocks {
		if !b.isFull() {
			b.insert(task)
			return
		}
	}

	b := newBlock[T](q.signal)
	q.blocks = append(q.blocks, b)
	b.insert(task)
}

// Poll repolls every woken task and reports whether the queue is empty.
// Trailing blocks left without pending tasks are discarded.
func (q *TaskQueue[T]) Poll() bool {
	for _, b := range q.blocks {
		b.pollWoken()
	}

	n := len(q.blocks)
	for n > 1 && q.blocks[n-1].pending == 0 {
		q.blocks[n-1] = nil
		n--
	}
	q.blocks = q.blocks[:n]

	return n == 1 && q.blocks[0].pending == 0
}

// Wakeup returns the channel signalled whenever a task is woken. One token may
// stand for many wakes across many blocks; call Poll after receiving it.
func (q *TaskQueue[T]) Wakeup() <-chan struct{} {
	return q.signal.ch
}

// Len returns the number of pending tasks
func (q *TaskQueue[T]) Len() int {
	total := 0
	for _, b := range q.blocks {
		total += b.len()
	}
	return total
}

// IsEmpty reports whether no task is pending
func (q *TaskQueue[T]) IsEmpty() bool {
	for _, b := range q.blocks {
		if b.pending != 0 {
			return false
		}
	}
	return true
}

// Blocks returns the number of allocated blocks
func (q *TaskQueue[T]) Blocks() int {
	return len(q.blocks)
}

// Clear drops every pending task in place and shrinks back to one block.
// Tasks are not told; outstanding wakers keep working but only cause
// spurious wake-ups.
func (q *TaskQueue[T]) Clear() {
	for i, b := range q.blocks {
		b.clear()
		if i > 0 {
			q.blocks[i] = nil
		}
	}
	q.blocks = q.blocks[:1]
}
