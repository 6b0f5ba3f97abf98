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

package validation

import (
	"fmt"
	"net/url"
	"slices"
)

// URLValidator checks a server URL: a known scheme followed by host:port
type URLValidator struct {
	raw     string
	schemes []string
}

var _ Validator = (*URLValidator)(nil)

// NewURLValidator creates an instance of URLValidator. When no scheme is
// given every scheme is accepted.
func NewURLValidator(raw string, schemes ...string) *URLValidator {
	return &URLValidator{raw: raw, schemes: schemes}
}

// Validate implements validation.Validator.
func (v *URLValidator) Validate() error {
	u, err := url.Parse(v.raw)
	if err != nil {
		return fmt.Errorf("invalid url=(%s): %w", v.raw, err)
	}

	if len(v.schemes) > 0 && !slices.Contains(v.schemes, u.Scheme) {
		return fmt.Errorf("invalid url=(%s): unsupported scheme %q", v.raw, u.Scheme)
	}

	return NewTCPAddressValidator(u.Host).Validate()
}
