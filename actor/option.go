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
	"github.com/tochemey/actorcore/log"
	"github.com/tochemey/actorcore/telemetry"
)

type config struct {
	name      string
	logger    log.Logger
	executor  Executor
	telemetry *telemetry.Telemetry
}

func newConfig(opts ...Option) *config {
	cfg := &config{logger: log.DefaultLogger}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}

// Option is the interface that applies an actor option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*config)

// Apply applies the option
func (f OptionFunc) Apply(c *config) {
	f(c)
}

// WithName sets the actor name, added to every log entry
func WithName(name string) Option {
	return OptionFunc(func(c *config) {
		c.name = name
	})
}

// WithLogger sets the actor logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithExecutor sets the executor running the handler computations of a
// fire-and-forget actor. When not set every Run starts its own worker pool
// and waits for it to drain before returning.
// The multiplex actor ignores it.
func WithExecutor(executor Executor) Option {
	return OptionFunc(func(c *config) {
		c.executor = executor
	})
}

// WithTelemetry enables the actor counters on the given telemetry meter.
func WithTelemetry(tel *telemetry.Telemetry) Option {
	return OptionFunc(func(c *config) {
		c.telemetry = tel
	})
}
