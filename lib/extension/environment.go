// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"github.com/ChainSafe/chainext/lib/primitives"
)

// IDs gives access to the identifier halves of the current call.
type IDs interface {
	// FuncID returns the low 16 bits of the identifier.
	FuncID() uint16
	// ExtID returns the high 16 bits of the identifier.
	ExtID() uint16
}

// Ext is the contract execution context of the call.
type Ext interface {
	// Address returns the account of the calling contract.
	Address() primitives.AccountID
}

// ChargedAmount is the receipt of a weight charge, used to adjust the
// charge once the actual weight is known.
type ChargedAmount struct {
	amount primitives.Weight
}

// NewChargedAmount returns a receipt for the amount given.
// It is meant to be used by Environment implementations.
func NewChargedAmount(amount primitives.Weight) ChargedAmount {
	return ChargedAmount{amount: amount}
}

// Amount returns the weight charged.
func (c ChargedAmount) Amount() primitives.Weight { return c.amount }

// Environment is the host environment of a single chain extension call.
// It is owned by the call and must not be shared.
type Environment interface {
	IDs
	// ChargeWeight charges the weight given, failing if the remaining
	// budget is insufficient. A failure aborts the call.
	ChargeWeight(amount primitives.Weight) (ChargedAmount, error)
	// AdjustWeight replaces a previous charge with the actual weight,
	// which must not exceed the charged amount.
	AdjustWeight(charged ChargedAmount, actual primitives.Weight)
	// InLen returns the length of the contract input.
	InLen() uint32
	// Read returns up to maxLen bytes of the contract input.
	// It does not charge any weight.
	Read(maxLen uint32) ([]byte, error)
	// Write copies the buffer to the contract output. It fails if the
	// contract output buffer is too small, unless allowSkip is set and
	// the contract opted out of the output. If weightPerByte is not nil,
	// weightPerByte * len(buffer) is charged when the copy happens.
	Write(buffer []byte, allowSkip bool, weightPerByte *primitives.Weight) error
	// Ext returns the contract execution context.
	Ext() Ext
}
