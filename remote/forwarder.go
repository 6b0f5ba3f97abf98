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

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"

	"github.com/tochemey/actorcore/address"
	gerrors "github.com/tochemey/actorcore/errors"
	"github.com/tochemey/actorcore/internal/validation"
	"github.com/tochemey/actorcore/log"
)

// Forwarder publishes every message it is sent to a NATS subject.
//
// It is a Sender: publishing never blocks on the remote side and failures are
// logged and dropped, never surfaced.
type Forwarder[M any] struct {
	conn    *nats.Conn
	subject string
	codec   Codec[M]
	logger  log.Logger
	tracer  trace.Tracer

	sent    *atomic.Int64
	dropped *atomic.Int64
}

// enforce compilation error
var _ address.Sender[int] = (*Forwarder[int])(nil)

// NewForwarder creates a Forwarder publishing to subject over conn.
func NewForwarder[M any](conn *nats.Conn, subject string, codec Codec[M], opts ...Option) (*Forwarder[M], error) {
	if conn == nil || conn.IsClosed() {
		return nil, gerrors.ErrNotConnected
	}

	if err := validation.NewSubjectValidator(subject).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", gerrors.ErrInvalidConfig, err)
	}

	if codec == nil {
		return nil, fmt.Errorf("%w: codec is required", gerrors.ErrInvalidConfig)
	}

	o := newOptions(opts...)
	return &Forwarder[M]{
		conn:    conn,
		subject: subject,
		codec:   codec,
		logger:  o.logger.With("subject", subject),
		tracer:  o.tracer(),
		sent:    atomic.NewInt64(0),
		dropped: atomic.NewInt64(0),
	}, nil
}

// Address wraps the forwarder into an Address. Releasing its last clone
// flushes the connection.
func (f *Forwarder[M]) Address() *address.Address[M] {
	return address.New[M](f, address.WithLogger(f.logger))
}

// Send implements address.Sender
func (f *Forwarder[M]) Send(msg M) {
	ctx := context.Background()
	var span trace.Span
	if f.tracer != nil {
		ctx, span = f.tracer.Start(ctx, forwardSpan,
			trace.WithSpanKind(trace.SpanKindProducer),
			trace.WithAttributes(attribute.String("messaging.destination", f.subject)))
		defer span.End()
	}

	payload, err := f.codec.Encode(msg)
	if err != nil {
		f.drop(span, fmt.Errorf("failed to encode message: %w", err))
		return
	}

	out := nats.NewMsg(f.subject)
	out.Data = payload
	if span != nil {
		inject(ctx, out)
	}

	if err := f.conn.PublishMsg(out); err != nil {
		f.drop(span, fmt.Errorf("failed to publish message: %w", err))
		return
	}
	f.sent.Inc()
}

// Close flushes the pending publications
func (f *Forwarder[M]) Close() {
	if f.conn.IsClosed() {
		return
	}

	if err := f.conn.Flush(); err != nil {
		f.logger.Warnf("failed to flush connection: %v", err)
	}
}

// Sent returns the number of published messages
func (f *Forwarder[M]) Sent() int64 {
	return f.sent.Load()
}

// Dropped returns the number of messages that could not be published
func (f *Forwarder[M]) Dropped() int64 {
	return f.dropped.Load()
}

func (f *Forwarder[M]) drop(span trace.Span, err error) {
	f.dropped.Inc()
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	f.logger.Warnf("%v, message dropped", err)
}
