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

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// MailboxMetric defines the mailbox instrumentation
type MailboxMetric struct {
	// Specifies the total number of messages accepted by the mailbox
	enqueuedCount metric.Int64Counter
	// Specifies the total number of messages dropped because the consumer is gone
	droppedCount metric.Int64Counter
}

// NewMailboxMetric creates an instance of MailboxMetric
func NewMailboxMetric(meter metric.Meter) (*MailboxMetric, error) {
	mailboxMetric := new(MailboxMetric)
	var err error
	if mailboxMetric.enqueuedCount, err = meter.Int64Counter(
		"mailbox_enqueued_count",
		metric.WithDescription("Total number of messages accepted by the mailbox"),
	); err != nil {
		return nil, fmt.Errorf("failed to create enqueuedCount instrument, %w", err)
	}

	if mailboxMetric.droppedCount, err = meter.Int64Counter(
		"mailbox_dropped_count",
		metric.WithDescription("Total number of messages dropped because the mailbox consumer is closed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create droppedCount instrument, %w", err)
	}

	return mailboxMetric, nil
}

// EnqueuedCount returns the enqueued messages counter
func (x *MailboxMetric) EnqueuedCount() metric.Int64Counter {
	return x.enqueuedCount
}

// DroppedCount returns the dropped messages counter
func (x *MailboxMetric) DroppedCount() metric.Int64Counter {
	return x.droppedCount
}
