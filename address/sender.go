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

package address

// Sender is the capability of accepting one message.
//
// Send must never block and never panic. A destination that can no longer
// accept messages absorbs them silently, logging the drop where it can.
type Sender[M any] interface {
	Send(msg M)
}

// SenderFunc adapts a plain function into a Sender.
type SenderFunc[M any] func(msg M)

// enforce compilation error
var _ Sender[int] = SenderFunc[int](nil)

// Send calls f(msg).
func (f SenderFunc[M]) Send(msg M) {
	f(msg)
}

// closer is implemented by senders that want to observe the release of the
// last Address referencing them. A mailbox producer uses it to signal
// closure to its consumer.
type closer interface {
	Close()
}
