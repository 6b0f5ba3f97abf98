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
	"time"

	"github.com/tochemey/actorcore/internal/validation"
)

const (
	// DefaultConnectTimeout is the connect timeout set by NewConfig
	DefaultConnectTimeout = 2 * time.Second
	// DefaultMaxRetries is the number of connection attempts set by NewConfig
	DefaultMaxRetries = 5
)

// Config describes how to reach the NATS server carrying messages between
// processes.
type Config struct {
	// URL of the NATS server in the format nats://host:port
	URL string
	// Subject is the literal subject forwarders publish to and listeners
	// subscribe to
	Subject string
	// Name identifies the connection on the server
	Name string
	// ConnectTimeout bounds each connection attempt and the backoff between
	// attempts
	ConnectTimeout time.Duration
	// MaxRetries is the number of connection attempts made by Dial
	MaxRetries int
}

var _ validation.Validator = (*Config)(nil)

// NewConfig returns a Config with the default timeout and retries
func NewConfig(url, subject, name string) *Config {
	return &Config{
		URL:            url,
		Subject:        subject,
		Name:           name,
		ConnectTimeout: DefaultConnectTimeout,
		MaxRetries:     DefaultMaxRetries,
	}
}

// Validate checks whether the given configuration is valid and reports
// every violation found
func (x *Config) Validate() error {
	return validation.New(validation.AllErrors()).
		AddValidator(validation.NewEmptyStringValidator("URL", x.URL)).
		AddValidator(validation.NewURLValidator(x.URL, "nats", "tls")).
		AddValidator(validation.NewEmptyStringValidator("Subject", x.Subject)).
		AddValidator(validation.NewSubjectValidator(x.Subject)).
		AddValidator(validation.NewEmptyStringValidator("Name", x.Name)).
		AddValidator(validation.NewIDValidator(x.Name)).
		AddAssertion(x.ConnectTimeout > 0, "ConnectTimeout must be greater than 0").
		AddAssertion(x.MaxRetries > 0, "MaxRetries must be greater than 0").
		Validate()
}
