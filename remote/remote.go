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

// Package remote carries actor messages between processes over NATS.
//
// A Forwarder is a Sender publishing every message to a subject; wrapped in
// an Address it plugs into Map, FilterMap and mailbox forwarding like any
// local destination. A Listener subscribes to a subject and hands every
// decoded message to a local Address, usually the producer side of a
// mailbox. Delivery is best effort in both directions: failures are logged
// and the message is dropped.
package remote

import (
	"fmt"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/nats-io/nats.go"

	gerrors "github.com/tochemey/actorcore/errors"
)

// Dial connects to the NATS server described by cfg. Connection attempts are
// retried with an exponential backoff, up to cfg.MaxRetries attempts.
func Dial(cfg *Config, opts ...Option) (*nats.Conn, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", gerrors.ErrInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", gerrors.ErrInvalidConfig, err)
	}

	o := newOptions(opts...)
	logger := o.logger.With("url", cfg.URL, "connection", cfg.Name)

	natsOpts := nats.GetDefaultOptions()
	natsOpts.Url = cfg.URL
	natsOpts.Name = cfg.Name
	natsOpts.Timeout = cfg.ConnectTimeout
	natsOpts.ReconnectWait = cfg.ConnectTimeout
	natsOpts.MaxReconnect = -1
	natsOpts.DisconnectedErrCB = func(_ *nats.Conn, err error) {
		if err != nil {
			logger.Warnf("disconnected: %v", err)
		}
	}
	natsOpts.ReconnectedCB = func(*nats.Conn) {
		logger.Info("reconnected")
	}

	var conn *nats.Conn
	retrier := retry.NewRetrier(cfg.MaxRetries, 100*time.Millisecond, cfg.ConnectTimeout)
	err := retrier.Run(func() error {
		var err error
		conn, err = natsOpts.Connect()
		if err != nil {
			logger.Debugf("connection attempt failed: %v", err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.URL, err)
	}

	logger.Debug("connected")
	return conn, nil
}
