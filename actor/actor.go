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

// Package actor drives the messages of a mailbox through a handler.
//
// Actor launches every message's handler as an independent unit of work on an
// Executor and never waits for it. Multiplex keeps every in-flight handler
// computation inside one TaskQueue polled by the Run goroutine, so a slow
// handler never holds up the others and no goroutine is spent per message.
//
// Both run until every producer address of the mailbox is released and the
// backlog is handled, or until the context passed to Run is done.
package actor

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/actorcore/errors"
	imetric "github.com/tochemey/actorcore/internal/metric"
	"github.com/tochemey/actorcore/internal/workerpool"
	"github.com/tochemey/actorcore/log"
	"github.com/tochemey/actorcore/mailbox"
)

// Actor is the fire-and-forget actor. Handler concurrency is unbounded.
type Actor[M any] struct {
	name     string
	mailbox  *mailbox.Mailbox[M]
	handler  func(context.Context, M)
	executor Executor
	logger   log.Logger
	metric   *imetric.ActorMetric
	running  *atomic.Bool
}

// New creates an Actor draining mb into handler.
func New[M any](mb *mailbox.Mailbox[M], handler func(context.Context, M), opts ...Option) *Actor[M] {
	cfg := newConfig(opts...)
	return &Actor[M]{
		name:     cfg.name,
		mailbox:  mb,
		handler:  handler,
		executor: cfg.executor,
		logger:   cfg.logger.With("actor", cfg.name),
		metric:   actorMetric(cfg),
		running:  atomic.NewBool(false),
	}
}

// Name returns the actor name
func (a *Actor[M]) Name() string {
	return a.name
}

// IsRunning reports whether Run is in progress
func (a *Actor[M]) IsRunning() bool {
	return a.running.Load()
}

// Run receives messages until the mailbox closes, launching the handler for
// each of them without waiting for it. It returns nil once the mailbox is
// closed and ctx.Err() when ctx is done first. The context handed to the
// handler is ctx.
//
// Without a custom executor, Run waits for every launched handler before
// returning.
func (a *Actor[M]) Run(ctx context.Context) error {
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

	executor := a.executor
	if executor == nil {
		pool := workerpool.New()
		pool.Start()
		defer pool.Stop()
		executor = &poolExecutor{pool: pool, logger: a.logger}
	}

	a.logger.Debug("actor started")
	for {
		msg, err := a.mailbox.Recv(ctx)
		if err != nil {
			if errors.Is(err, gerrors.ErrMailboxClosed) || errors.Is(err, gerrors.ErrMailboxDisposed) {
				a.logger.Debug("mailbox closed, actor stopped")
				return nil
			}
			return err
		}

		a.launch(ctx, executor, msg)
	}
}

func (a *Actor[M]) launch(ctx context.Context, executor Executor, msg M) {
	if a.metric != nil {
		a.metric.InflightCount().Add(ctx, 1)
	}

	executor.Submit(func() {
		defer func() {
			if a.metric != nil {
				a.metric.InflightCount().Add(ctx, -1)
				a.metric.ProcessedCount().Add(ctx, 1)
			}
		}()
		defer a.recovery(ctx)
		a.handler(ctx, msg)
	})
}

// recovery is called upon after message is processed
func (a *Actor[M]) recovery(ctx context.Context) {
	if r := recover(); r != nil {
		err := toPanicError(r, 2)
		a.logger.Errorf("handler panicked: %v", err)
		if a.metric != nil {
			a.metric.PanicCount().Add(ctx, 1)
		}
	}
}

func actorMetric(cfg *config) *imetric.ActorMetric {
	if cfg.telemetry == nil {
		return nil
	}

	metric, err := imetric.NewActorMetric(cfg.telemetry.Meter())
	if err != nil {
		otel.Handle(err)
		return nil
	}
	return metric
}
