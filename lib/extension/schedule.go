// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"github.com/ChainSafe/chainext/lib/primitives"
)

// HostFunctionWeight is the weight of a host function taking a buffer,
// linear in the buffer length.
type HostFunctionWeight struct {
	Base    primitives.Weight
	PerByte primitives.Weight
}

// For returns the weight for a buffer of length n.
func (h HostFunctionWeight) For(n uint32) primitives.Weight {
	return h.Base.Add(h.PerByte.Mul(uint64(n)))
}

// Schedule is the weight table of the contract host functions used to
// price the extension work. It is immutable once built.
type Schedule struct {
	// DebugMessage prices the overhead of entering the extension.
	DebugMessage HostFunctionWeight
	// Return prices copying bytes from the contract.
	Return HostFunctionWeight
	// Input prices copying bytes to the contract.
	Input HostFunctionWeight
}

// DefaultSchedule returns the default host function weights.
func DefaultSchedule() Schedule {
	return Schedule{
		DebugMessage: HostFunctionWeight{
			Base:    primitives.NewWeight(9_118_000, 0),
			PerByte: primitives.NewWeight(277, 0),
		},
		Return: HostFunctionWeight{
			Base:    primitives.NewWeight(8_281_000, 0),
			PerByte: primitives.NewWeight(319, 0),
		},
		Input: HostFunctionWeight{
			Base:    primitives.NewWeight(7_442_000, 0),
			PerByte: primitives.NewWeight(272, 0),
		},
	}
}

// Overhead returns the weight charged when entering the extension with
// an input of length n.
func (s Schedule) Overhead(n uint32) primitives.Weight {
	return s.DebugMessage.For(n)
}

// ReadFromBuffer returns the weight of reading n bytes of contract input.
func (s Schedule) ReadFromBuffer(n uint32) primitives.Weight {
	return s.Return.For(n)
}

// WriteToContract returns the weight of writing n bytes to the contract
// output.
func (s Schedule) WriteToContract(n uint32) primitives.Weight {
	return s.Input.For(n)
}
