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
	"github.com/tochemey/actorcore/internal/workerpool"
	"github.com/tochemey/actorcore/log"
)

// Executor runs the handler computations launched by an Actor.
type Executor interface {
	// Submit schedules task. It must not block on task completion.
	Submit(task func())
}

// ExecutorFunc adapts a function into an Executor.
type ExecutorFunc func(task func())

// enforce compilation error
var _ Executor = ExecutorFunc(nil)

// Submit calls f(task).
func (f ExecutorFunc) Submit(task func()) {
	f(task)
}

// GoExecutor runs every task on its own goroutine.
var GoExecutor Executor = ExecutorFunc(func(task func()) {
	go task()
})

// poolExecutor submits tasks to a worker pool
type poolExecutor struct {
	pool   *workerpool.WorkerPool
	logger log.Logger
}

var _ Executor = (*poolExecutor)(nil)

func (x *poolExecutor) Submit(task func()) {
	if err := x.pool.SubmitWork(task); err != nil {
		x.logger.Warnf("worker pool rejected task, running it detached: %v", err)
		go task()
	}
}
