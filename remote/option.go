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
	"github.com/tochemey/actorcore/log"
	"github.com/tochemey/actorcore/telemetry"
)

type options struct {
	logger      log.Logger
	telemetry   *telemetry.Telemetry
	compression bool
}

func newOptions(opts ...Option) *options {
	o := &options{logger: log.DefaultLogger}
	for _, opt := range opts {
		opt.Apply(o)
	}
	return o
}

// Option is the interface that applies a remote option.
type Option interface {
	// Apply sets the Option value of the options.
	Apply(*options)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*options)

// Apply applies the option
func (f OptionFunc) Apply(o *options) {
	f(o)
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// WithTelemetry sets the telemetry whose tracer spans every forwarded and
// received message
func WithTelemetry(tel *telemetry.Telemetry) Option {
	return OptionFunc(func(o *options) {
		o.telemetry = tel
	})
}

// WithCompression makes a codec compress payloads with Zstandard.
// Both ends of a subject must agree on it.
func WithCompression() Option {
	return OptionFunc(func(o *options) {
		o.compression = true
	})
}
