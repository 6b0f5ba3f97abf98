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
	"errors"
	"fmt"
)

const (
	idPattern   = `^[a-zA-Z0-9][a-zA-Z0-9\-_.]*$`
	idMaxLength = 255
)

// idValidator checks names such as a connection name
type idValidator struct {
	id string
}

var _ Validator = (*idValidator)(nil)

// NewIDValidator creates a validator accepting alphanumeric identifiers that
// may also contain dashes, underscores and dots after the first character.
func NewIDValidator(id string) Validator {
	return &idValidator{id: id}
}

// Validate executes the validation
func (v *idValidator) Validate() error {
	if len(v.id) > idMaxLength {
		return fmt.Errorf("invalid id=(%s): length exceeds %d characters", v.id, idMaxLength)
	}

	return NewPatternValidator(idPattern, v.id,
		fmt.Errorf("invalid id=(%s): %w", v.id, errors.New("must contain only word characters, dashes or dots"))).
		Validate()
}
