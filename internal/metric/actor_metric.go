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

// ActorMetric defines the actor instrumentation
type ActorMetric struct {
	// Specifies the total number of messages whose handler completed
	processedCount metric.Int64Counter
	// Specifies the number of handler computations currently in flight
	inflightCount metric.Int64UpDownCounter
	// Specifies the number of recovered handler panics
	panicCount metric.Int64Counter
}

// NewActorMetric creates an instance of ActorMetric
func NewActorMetric(meter metric.Meter) (*ActorMetric, error) {
	actorMetric := new(ActorMetric)
	var err error
	if actorMetric.processedCount, err = meter.Int64Counter(
		"actor_processed_count",
		metric.WithDescription("Total number of messages processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedCount instrument, %w", err)
	}

	if actorMetric.inflightCount, err = meter.Int64UpDownCounter(
		"actor_inflight_count",
		metric.WithDescription("Number of handler computations in flight"),
	); err != nil {
		return nil, fmt.Errorf("failed to create inflightCount instrument, %w", err)
	}

	if actorMetric.panicCount, err = meter.Int64Counter(
		"actor_panic_count",
		metric.WithDescription("Total number of recovered handler panics"),
	); err != nil {
		return nil, fmt.Errorf("failed to create panicCount instrument, %w", err)
	}

	return actorMetric, nil
}

// ProcessedCount returns the processed messages counter
func (x *ActorMetric) ProcessedCount() metric.Int64Counter {
	return x.processedCount
}

// InflightCount returns the in-flight computations counter
func (x *ActorMetric) InflightCount() metric.Int64UpDownCounter {
	return x.inflightCount
}

// PanicCount returns the recovered panics counter
func (x *ActorMetric) PanicCount() metric.Int64Counter {
	return x.panicCount
}
