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

// Package mailbox implements the unbounded multi-producer single-consumer
// message queue an actor drains.
//
// New returns the consumer half and the producer Address. Producers never
// block: the queue grows without bound. Releasing every clone of the producer
// Address closes the mailbox once its backlog has been received. Closing the
// consumer turns every later send into a logged drop.
package mailbox

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/atomic"

	"github.com/tochemey/actorcore/address"
	gerrors "github.com/tochemey/actorcore/errors"
	imetric "github.com/tochemey/actorcore/internal/metric"
	"github.com/tochemey/actorcore/internal/queue"
	"github.com/tochemey/actorcore/log"
)

// Status reports the outcome of TryRecv
type Status int

const (
	// Received means a message was returned
	Received Status = iota
	// Empty means no message is queued yet
	Empty
	// Closed means every producer is gone and the backlog is drained
	Closed
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case Received:
		return "received"
	case Empty:
		return "empty"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Mailbox is the consumer half of an unbounded FIFO queue.
// Only one goroutine may receive from it.
type Mailbox[T any] struct {
	id     string
	name   string
	queue  *queue.MPSC[T]
	notify chan struct{}

	// closed is set once the last producer address is released
	closed *atomic.Bool
	// disposed is set once the consumer is closed
	disposed *atomic.Bool
	dropped  *atomic.Int64
	// purgeMu serializes the queue pops done after disposal
	purgeMu sync.Mutex

	logger log.Logger
	metric *imetric.MailboxMetric
}

// New creates a mailbox and the producer Address feeding it.
func New[T any](opts ...Option) (*Mailbox[T], *address.Address[T]) {
	cfg := &config{logger: log.DefaultLogger}
	for _, opt := range opts {
		opt.Apply(cfg)
	}

	id := uuid.NewString()
	mb := &Mailbox[T]{
		id:       id,
		name:     cfg.name,
		queue:    queue.NewMPSC[T](),
		notify:   make(chan struct{}, 1),
		closed:   atomic.NewBool(false),
		disposed: atomic.NewBool(false),
		dropped:  atomic.NewInt64(0),
		logger:   cfg.logger.With("mailbox", id, "name", cfg.name),
	}

	if cfg.telemetry != nil {
		mailboxMetric, err := imetric.NewMailboxMetric(cfg.telemetry.Meter())
		if err != nil {
			otel.Handle(err)
		}
		mb.metric = mailboxMetric
	}

	return mb, address.New[T](&producer[T]{mailbox: mb}, address.WithLogger(mb.logger))
}

// ID returns the mailbox unique identifier
func (m *Mailbox[T]) ID() string {
	return m.id
}

// Name returns the mailbox name
func (m *Mailbox[T]) Name() string {
	return m.name
}

// Recv returns the next message in submission order.
//
// It blocks until a message is available, the mailbox closes
// (ErrMailboxClosed), the consumer is closed (ErrMailboxDisposed) or ctx is
// done.
func (m *Mailbox[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		msg, status := m.TryRecv()
		switch status {
		case Received:
			return msg, nil
		case Closed:
			if m.disposed.Load() {
				return zero, gerrors.ErrMailboxDisposed
			}
			return zero, gerrors.ErrMailboxClosed
		}

		select {
		case <-m.notify:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// TryRecv returns the next message without blocking.
func (m *Mailbox[T]) TryRecv() (T, Status) {
	var zero T
	if m.disposed.Load() {
		return zero, Closed
	}

	if msg, ok := m.queue.Pop(); ok {
		return msg, Received
	}

	if !m.closed.Load() {
		return zero, Empty
	}

	// every push happens before the release that closed the mailbox,
	// so a second look sees anything linked in the meantime
	if msg, ok := m.queue.Pop(); ok {
		return msg, Received
	}
	return zero, Closed
}

// Notify returns the channel signalled whenever a message arrives or the
// mailbox closes. Signals coalesce: one pending signal may stand for many
// events, and a signal may be stale. Drain with TryRecv after every wake.
func (m *Mailbox[T]) Notify() <-chan struct{} {
	return m.notify
}

// Len returns the number of queued messages
func (m *Mailbox[T]) Len() int64 {
	return m.queue.Len()
}

// IsClosed reports whether every producer address has been released
func (m *Mailbox[T]) IsClosed() bool {
	return m.closed.Load()
}

// Dropped returns the number of messages dropped since the consumer closed
func (m *Mailbox[T]) Dropped() int64 {
	return m.dropped.Load()
}

// Close drops the consumer. Queued messages are discarded and every later
// send is logged and dropped. It must be called from the receiving goroutine.
func (m *Mailbox[T]) Close() {
	if !m.disposed.CompareAndSwap(false, true) {
		return
	}

	m.purge()
	m.signal()
}

// purge drops whatever is queued. Once disposed the consumer no longer pops,
// so purgeMu makes the purging goroutine the only reader of the queue.
func (m *Mailbox[T]) purge() {
	m.purgeMu.Lock()
	defer m.purgeMu.Unlock()
	for {
		if _, ok := m.queue.Pop(); !ok {
			return
		}
		m.drop()
	}
}

func (m *Mailbox[T]) signal() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *Mailbox[T]) drop() {
	m.dropped.Inc()
	if m.metric != nil {
		m.metric.DroppedCount().Add(context.Background(), 1)
	}
}

// producer is the Sender wrapped by the mailbox Address.
type producer[T any] struct {
	mailbox *Mailbox[T]
}

func (p *producer[T]) Send(msg T) {
	m := p.mailbox
	if m.disposed.Load() {
		m.drop()
		m.logger.Warn("destination closed, message dropped")
		return
	}

	m.queue.Push(msg)
	if m.metric != nil {
		m.metric.EnqueuedCount().Add(context.Background(), 1)
	}

	// Close may have purged between the check above and the push
	if m.disposed.Load() {
		m.purge()
		m.logger.Warn("destination closed, message dropped")
		return
	}
	m.signal()
}

// Close is invoked once the last producer address is released.
func (p *producer[T]) Close() {
	p.mailbox.closed.Store(true)
	p.mailbox.signal()
}
