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

// Package errors holds the sentinel errors surfaced by the runtime.
//
// Only structural failures are surfaced as errors. Sending to a destination
// whose consumer is gone is never an error: it is logged and the message is
// dropped.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrRecv is returned by a Promise whose Return side was closed without
	// sending a value.
	ErrRecv = errors.New("promise closed without a value")

	// ErrMailboxClosed is returned by Mailbox.Recv once every producer address
	// has been released and the queue is drained.
	ErrMailboxClosed = errors.New("mailbox is closed")

	// ErrMailboxDisposed is returned when the consumer side of the mailbox has
	// been closed.
	ErrMailboxDisposed = errors.New("mailbox consumer is closed")

	// ErrActorRunning is returned when Run is called on an actor that is
	// already running.
	ErrActorRunning = errors.New("actor is already running")

	// ErrUndefinedHandler is returned when an actor is built without a handler.
	ErrUndefinedHandler = errors.New("actor handler is not defined")

	// ErrUndefinedMailbox is returned when an actor is built without a mailbox.
	ErrUndefinedMailbox = errors.New("actor mailbox is not defined")

	// ErrInvalidConfig is returned when a remote configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotConnected is returned when a remote component is given a nil or
	// closed NATS connection.
	ErrNotConnected = errors.New("not connected")

	// ErrListenerStopped is returned when stopping a listener twice.
	ErrListenerStopped = errors.New("listener already stopped")

	// ErrInvalidPayload is returned by a codec when the payload cannot be decoded.
	ErrInvalidPayload = errors.New("invalid payload")
)

// PanicError wraps a panic recovered from a message handler
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}
