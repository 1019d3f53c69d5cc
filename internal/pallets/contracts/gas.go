// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"github.com/ChainSafe/chainext/lib/primitives"
)

// GasMeter tracks the weight consumed by a contract call.
type GasMeter struct {
	limit    primitives.Weight
	consumed primitives.Weight
}

// NewGasMeter returns a gas meter with the limit given.
func NewGasMeter(limit primitives.Weight) *GasMeter {
	return &GasMeter{limit: limit}
}

// Charge consumes the amount given. It returns ErrOutOfGas and consumes
// nothing if the amount exceeds the weight left.
func (g *GasMeter) Charge(amount primitives.Weight) error {
	consumed := g.consumed.Add(amount)
	if consumed.AnyGt(g.limit) {
		return ErrOutOfGas
	}
	g.consumed = consumed
	return nil
}

// Adjust refunds the difference between a charged amount and the
// actual amount. The actual amount is capped by the charged amount.
func (g *GasMeter) Adjust(charged, actual primitives.Weight) {
	refund := charged.Sub(actual.Min(charged))
	g.consumed = g.consumed.Sub(refund)
}

// Consumed returns the weight consumed.
func (g *GasMeter) Consumed() primitives.Weight { return g.consumed }

// Limit returns the weight limit.
func (g *GasMeter) Limit() primitives.Weight { return g.limit }

// Remaining returns the weight left.
func (g *GasMeter) Remaining() primitives.Weight { return g.limit.Sub(g.consumed) }
