// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package frame

import (
	"fmt"

	"github.com/ChainSafe/chainext/lib/primitives"
)

// OriginKind is the privilege level of an origin.
type OriginKind uint8

const (
	// RootOrigin is the highest privilege level.
	RootOrigin OriginKind = iota
	// SignedOrigin is an origin signed by an account.
	SignedOrigin
	// NoneOrigin is an unsigned origin.
	NoneOrigin
)

func (k OriginKind) String() string {
	switch k {
	case RootOrigin:
		return "Root"
	case SignedOrigin:
		return "Signed"
	case NoneOrigin:
		return "None"
	default:
		return fmt.Sprintf("OriginKind(%d)", uint8(k))
	}
}

// RawOrigin is the authenticated identity a call is dispatched with.
type RawOrigin struct {
	Kind   OriginKind
	Signer primitives.AccountID
}

// Root returns the root origin.
func Root() RawOrigin { return RawOrigin{Kind: RootOrigin} }

// Signed returns an origin signed by the account given.
func Signed(account primitives.AccountID) RawOrigin {
	return RawOrigin{Kind: SignedOrigin, Signer: account}
}

// None returns the unsigned origin.
func None() RawOrigin { return RawOrigin{Kind: NoneOrigin} }

// EnsureSigned returns the signer of the origin, or BadOrigin if the
// origin is not signed.
func (o RawOrigin) EnsureSigned() (primitives.AccountID, error) {
	if o.Kind != SignedOrigin {
		return primitives.AccountID{}, primitives.BadOrigin
	}
	return o.Signer, nil
}

// EnsureRoot returns BadOrigin if the origin is not root.
func (o RawOrigin) EnsureRoot() error {
	if o.Kind != RootOrigin {
		return primitives.BadOrigin
	}
	return nil
}

func (o RawOrigin) String() string {
	if o.Kind == SignedOrigin {
		return "Signed(" + o.Signer.String() + ")"
	}
	return o.Kind.String()
}

// Origin is a raw origin together with the call filters applied to any
// call dispatched with it. The root origin bypasses the filters.
type Origin[C any] struct {
	raw     RawOrigin
	filters []Contains[C]
}

// NewOrigin returns an origin without filter.
func NewOrigin[C any](raw RawOrigin) *Origin[C] {
	return &Origin[C]{raw: raw}
}

// Raw returns the raw origin.
func (o *Origin[C]) Raw() RawOrigin { return o.raw }

// AddFilter adds a call filter. A call passes if every filter added
// contains it.
func (o *Origin[C]) AddFilter(filter Contains[C]) {
	o.filters = append(o.filters, filter)
}

// Filter returns true if the call can be dispatched with this origin.
func (o *Origin[C]) Filter(call C) bool {
	if o.raw.Kind == RootOrigin {
		return true
	}
	for _, filter := range o.filters {
		if !filter.Contains(call) {
			return false
		}
	}
	return true
}
