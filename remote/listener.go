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

package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/tochemey/actorcore/address"
	gerrors "github.com/tochemey/actorcore/errors"
	"github.com/tochemey/actorcore/log"
)

// drainTimeout bounds how long Stop waits for pending messages to be handled
const drainTimeout = 5 * time.Second

// Listener decodes every message published on a NATS subject and hands it to
// a destination Address. Malformed payloads are logged and dropped.
type Listener[M any] struct {
	subscription *nats.Subscription
	subject      string
	codec        Codec[M]
	dst          *address.Address[M]
	logger       log.Logger
	tracer       trace.Tracer

	// mu is held shared by every handler and exclusively by Stop while it
	// releases dst
	mu       sync.RWMutex
	released bool

	stopped  *atomic.Bool
	received *atomic.Int64
	dropped  *atomic.Int64
}

// Listen subscribes to subject over conn and feeds dst. The listener owns
// dst: Stop releases it.
func Listen[M any](conn *nats.Conn, subject string, codec Codec[M], dst *address.Address[M], opts ...Option) (*Listener[M], error) {
	if conn == nil || conn.IsClosed() {
		return nil, gerrors.ErrNotConnected
	}

	if codec == nil || dst == nil {
		return nil, fmt.Errorf("%w: codec and destination are required", gerrors.ErrInvalidConfig)
	}

	o := newOptions(opts...)
	listener := &Listener[M]{
		subject:  subject,
		codec:    codec,
		dst:      dst,
		logger:   o.logger.With("subject", subject),
		tracer:   o.tracer(),
		stopped:  atomic.NewBool(false),
		received: atomic.NewInt64(0),
		dropped:  atomic.NewInt64(0),
	}

	subscription, err := conn.Subscribe(subject, listener.handle)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	// make sure the server registered the interest before anything is published
	if err := conn.Flush(); err != nil {
		return nil, multierr.Combine(
			fmt.Errorf("failed to subscribe to %s: %w", subject, err),
			subscription.Unsubscribe())
	}

	listener.subscription = subscription
	listener.logger.Debug("listener started")
	return listener, nil
}

func (l *Listener[M]) handle(in *nats.Msg) {
	var span trace.Span
	if l.tracer != nil {
		ctx := extract(context.Background(), in)
		_, span = l.tracer.Start(ctx, receiveSpan,
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(attribute.String("messaging.destination", l.subject)))
		defer span.End()
	}

	msg, err := l.codec.Decode(in.Data)
	if err != nil {
		l.dropped.Inc()
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		l.logger.Warnf("failed to decode message: %v, message dropped", err)
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.released {
		l.dropped.Inc()
		l.logger.Warn("listener stopped, message dropped")
		return
	}

	l.received.Inc()
	l.dst.Send(msg)
}

// Stop drains the subscription, handing every message already delivered to
// the destination, then releases the destination Address. It waits at most
// drainTimeout for the drain to complete.
func (l *Listener[M]) Stop() error {
	if !l.stopped.CompareAndSwap(false, true) {
		return gerrors.ErrListenerStopped
	}

	var err error
	if l.subscription.IsValid() {
		closed := l.subscription.StatusChanged(nats.SubscriptionClosed)
		if err = l.subscription.Drain(); err == nil {
			select {
			case <-closed:
			case <-time.After(drainTimeout):
				l.logger.Warnf("subscription drain did not complete within %s", drainTimeout)
				err = l.subscription.Unsubscribe()
			}
		}
	}

	// wait for the handler in flight, if any
	l.mu.Lock()
	l.released = true
	l.dst.Release()
	l.mu.Unlock()

	l.logger.Debug("listener stopped")
	return err
}

// Received returns the number of messages handed to the destination
func (l *Listener[M]) Received() int64 {
	return l.received.Load()
}

// Dropped returns the number of malformed payloads
func (l *Listener[M]) Dropped() int64 {
	return l.dropped.Load()
}
