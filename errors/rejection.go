/*
 * MIT License
 *
 * Copyright (c) 2024-2026 Holon Authors
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

package errors

import (
	"errors"
	"fmt"
)

// Code identifies a rejection class. Codes are part of the public contract:
// callers branch on them and they appear unchanged in logs and metrics.
type Code string

const (
	// CodeInvalidArgument rejects malformed command input such as a
	// non-positive quantity or an empty required field.
	CodeInvalidArgument Code = "InvalidArgument"

	// CodeEmptyOrder rejects approving a purchase order without line items.
	CodeEmptyOrder Code = "EmptyOrder"

	// CodeInvalidTransition rejects a command the current lifecycle state
	// does not permit.
	CodeInvalidTransition Code = "InvalidTransition"

	// CodeCurrencyMismatch rejects mixing currencies within one aggregate.
	CodeCurrencyMismatch Code = "CurrencyMismatch"

	// CodeTenantMismatch rejects a command whose caller tenant differs from
	// the target identity tenant.
	CodeTenantMismatch Code = "TenantMismatch"

	// CodeNotFound rejects a non-creation command addressed to an identity
	// that has no persisted state.
	CodeNotFound Code = "NotFound"

	// CodeStoreUnavailable signals the state store could not be reached.
	// The same command may succeed when retried.
	CodeStoreUnavailable Code = "StoreUnavailable"

	// CodeCorruptState signals the persisted snapshot cannot be decoded.
	// Commands fail until the identity is repaired and evicted.
	CodeCorruptState Code = "CorruptState"

	// CodeRateLimited signals the caller tenant exhausted its command quota
	// for the current window.
	CodeRateLimited Code = "RateLimited"

	// CodeInternal signals an unexpected fault inside the runtime or a
	// behavior. Details are logged, never surfaced.
	CodeInternal Code = "Internal"
)

// Rejection is a typed command failure. Business rules, the tenancy guard
// and the placement layer all reject with one of the codes above plus a
// human-readable message. A rejection never crashes the hosting process.
type Rejection struct {
	Code    Code
	Message string
}

var _ error = (*Rejection)(nil)

// Reject creates a rejection with the given code and formatted message.
func Reject(code Code, format string, args ...any) *Rejection {
	return &Rejection{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

// AsRejection unwraps err into a Rejection when one is in the chain.
func AsRejection(err error) (*Rejection, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}

// HasCode reports whether err carries a rejection with the given code.
func HasCode(err error, code Code) bool {
	if rejection, ok := AsRejection(err); ok {
		return rejection.Code == code
	}
	return false
}

// CodeOf returns the rejection code carried by err, or CodeInternal when
// err is not a rejection.
func CodeOf(err error) Code {
	if rejection, ok := AsRejection(err); ok {
		return rejection.Code
	}
	return CodeInternal
}
