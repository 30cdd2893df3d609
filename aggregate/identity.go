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

package aggregate

import (
	"errors"
	"fmt"
	"strings"

	herrors "github.com/holonhq/holon/errors"
	"github.com/holonhq/holon/internal/validation"
)

const identitySeparator = "/"

// segmentPattern constrains every identity segment to word characters with
// non-leading '-', '_' or '.'.
const segmentPattern = "^[a-zA-Z0-9][a-zA-Z0-9-_\\.]*$"

// Identity addresses exactly one logical aggregate instance. It combines the
// owning tenant, the aggregate kind and the entity identifier. Identities are
// immutable and safe for concurrent use.
type Identity struct {
	tenantID string
	kind     string
	entityID string
}

// ensure Identity implements the validation.Validator interface
var _ validation.Validator = (*Identity)(nil)

// NewIdentity builds and validates an identity from its three segments.
func NewIdentity(tenantID, kind, entityID string) (Identity, error) {
	identity := Identity{
		tenantID: tenantID,
		kind:     kind,
		entityID: entityID,
	}
	if err := identity.Validate(); err != nil {
		return Identity{}, herrors.NewErrInvalidIdentity(err)
	}
	return identity, nil
}

// TenantID returns the owning tenant segment.
func (id Identity) TenantID() string { return id.tenantID }

// Kind returns the aggregate kind segment.
func (id Identity) Kind() string { return id.kind }

// EntityID returns the entity segment.
func (id Identity) EntityID() string { return id.entityID }

// String returns the stable "tenant/kind/entity" form used as the directory
// and persistence key.
func (id Identity) String() string {
	return id.tenantID + identitySeparator + id.kind + identitySeparator + id.entityID
}

// Equal reports whether both identities address the same aggregate.
func (id Identity) Equal(other Identity) bool {
	return id == other
}

// Validate implements validation.Validator.
func (id Identity) Validate() error {
	chain := validation.New(validation.FailFast())
	for _, segment := range []struct {
		name  string
		value string
	}{
		{"tenant id", id.tenantID},
		{"kind", id.kind},
		{"entity id", id.entityID},
	} {
		customErr := fmt.Errorf("%s must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-', '_' or '.')", segment.name)
		chain.
			AddAssertion(segment.value != "", fmt.Sprintf("%s is required", segment.name)).
			AddAssertion(len(segment.value) <= 255, fmt.Sprintf("%s is too long. Maximum length is 255", segment.name)).
			AddValidator(validation.NewPatternValidator(segmentPattern, strings.TrimSpace(segment.value), customErr))
	}
	return chain.Validate()
}

// ParseIdentity reconstructs an Identity from its string form.
func ParseIdentity(s string) (Identity, error) {
	parts := strings.SplitN(s, identitySeparator, 3)
	if len(parts) != 3 {
		return Identity{}, herrors.NewErrInvalidIdentity(errors.New("expected tenant/kind/entity"))
	}
	return NewIdentity(parts[0], parts[1], parts[2])
}
