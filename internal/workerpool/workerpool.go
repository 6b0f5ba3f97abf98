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

// Package workerpool runs submitted functions on reusable goroutines.
//
// It is the default executor of fire-and-forget actors: every message handler
// runs as its own unit of work, but goroutines are recycled between handlers
// and reaped once idle for too long.
package workerpool

import (
	"errors"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// maxShards is the maximum number of shards supported by the worker pool
const maxShards = 128

var (
	// ErrNotStarted is returned when submitting work to a pool not yet started
	ErrNotStarted = errors.New("worker pool must be started first")
	// ErrStopped is returned when submitting work to a stopped pool
	ErrStopped = errors.New("worker pool is stopped")
)

// WorkerPool runs submitted tasks on pooled goroutines
type WorkerPool struct {
	idleWorkerLifetime time.Duration
	numShards          int
	shards             []*poolShard

	mutex   sync.Mutex
	started *atomic.Bool
	stopped *atomic.Bool
	stopCh  chan struct{}

	spawnedWorkers *atomic.Int64
	running        sync.WaitGroup
}

type worker struct {
	taskChan chan func()
	shard    *poolShard
	lastUsed time.Time
}

type poolShard struct {
	wp          *WorkerPool
	mutex       sync.Mutex
	idleWorkers []*worker
	stopped     bool
}

// New creates an instance of WorkerPool
func New(opts ...Option) *WorkerPool {
	wp := &WorkerPool{
		idleWorkerLifetime: time.Second,
		numShards:          runtime.GOMAXPROCS(0),
		started:            atomic.NewBool(false),
		stopped:            atomic.NewBool(false),
		stopCh:             make(chan struct{}),
		spawnedWorkers:     atomic.NewInt64(0),
	}

	for _, opt := range opts {
		opt.Apply(wp)
	}

	if wp.numShards > maxShards {
		wp.numShards = maxShards
	}
	return wp
}

// Start starts the worker pool
func (wp *WorkerPool) Start() {
	wp.mutex.Lock()
	defer wp.mutex.Unlock()
	if wp.started.Load() {
		return
	}

	wp.shards = make([]*poolShard, wp.numShards)
	for i := range wp.shards {
		wp.shards[i] = &poolShard{
			wp:          wp,
			idleWorkers: make([]*worker, 0, 64),
		}
	}

	wp.started.Store(true)
	wp.running.Add(1)
	go wp.cleanup()
}

// Stop stops the worker pool and waits for every running task to finish.
// Calling Stop more than once, or on a pool never started, is a no-op.
func (wp *WorkerPool) Stop() {
	wp.mutex.Lock()
	if !wp.started.Load() || wp.stopped.Load() {
		wp.mutex.Unlock()
		return
	}

	for _, shard := range wp.shards {
		shard.mutex.Lock()
		shard.stopped = true
		for _, w := range shard.idleWorkers {
			close(w.taskChan)
		}
		shard.idleWorkers = nil
		shard.mutex.Unlock()
	}

	wp.stopped.Store(true)
	close(wp.stopCh)
	wp.mutex.Unlock()

	wp.running.Wait()
}

// SubmitWork runs task on an idle worker, spawning one when none is idle.
func (wp *WorkerPool) SubmitWork(task func()) error {
	if !wp.started.Load() {
		return ErrNotStarted
	}

	shard := wp.shards[rand.IntN(wp.numShards)]
	return shard.dispatch(task)
}

// GetSpawnedWorkers returns the number of live workers
func (wp *WorkerPool) GetSpawnedWorkers() int {
	return int(wp.spawnedWorkers.Load())
}

func (shard *poolShard) dispatch(task func()) error {
	shard.mutex.Lock()
	if shard.stopped {
		shard.mutex.Unlock()
		return ErrStopped
	}

	if n := len(shard.idleWorkers); n > 0 {
		w := shard.idleWorkers[n-1]
		shard.idleWorkers[n-1] = nil
		shard.idleWorkers = shard.idleWorkers[:n-1]
		shard.mutex.Unlock()
		w.taskChan <- task
		return nil
	}

	// spawn under the lock so that Stop cannot miss this worker
	w := &worker{
		taskChan: make(chan func(), 1),
		shard:    shard,
	}
	shard.wp.running.Add(1)
	shard.wp.spawnedWorkers.Inc()
	shard.mutex.Unlock()

	w.taskChan <- task
	go w.run()
	return nil
}

func (w *worker) run() {
	wp := w.shard.wp
	defer wp.running.Done()
	defer wp.spawnedWorkers.Dec()

	for task := range w.taskChan {
		task()
		if !w.shard.setIdle(w) {
			return
		}
	}
}

// setIdle parks the worker. It returns false when the shard is stopped and
// the worker must exit.
func (shard *poolShard) setIdle(w *worker) bool {
	w.lastUsed = time.Now()
	shard.mutex.Lock()
	defer shard.mutex.Unlock()
	if shard.stopped {
		return false
	}
	shard.idleWorkers = append(shard.idleWorkers, w)
	return true
}

// cleanup reaps workers idle for longer than the configured lifetime
func (wp *WorkerPool) cleanup() {
	defer wp.running.Done()

	ticker := time.NewTicker(wp.idleWorkerLifetime)
	defer ticker.Stop()

	for {
		select {
		case <-wp.stopCh:
			return
		case now := <-ticker.C:
			for _, shard := range wp.shards {
				shard.reap(now, wp.idleWorkerLifetime)
			}
		}
	}
}

func (shard *poolShard) reap(now time.Time, lifetime time.Duration) {
	shard.mutex.Lock()
	defer shard.mutex.Unlock()
	if shard.stopped {
		return
	}

	// idle workers are appended in lastUsed order, oldest first
	expired := 0
	for expired < len(shard.idleWorkers) && now.Sub(shard.idleWorkers[expired].lastUsed) >= lifetime {
		close(shard.idleWorkers[expired].taskChan)
		expired++
	}

	if expired == 0 {
		return
	}

	remaining := copy(shard.idleWorkers, shard.idleWorkers[expired:])
	for i := remaining; i < len(shard.idleWorkers); i++ {
		shard.idleWorkers[i] = nil
	}
	shard.idleWorkers = shard.idleWorkers[:remaining]
}
