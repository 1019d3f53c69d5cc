// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"github.com/ChainSafe/chainext/lib/extension"
	"github.com/ChainSafe/chainext/lib/primitives"
)

var _ extension.Environment = (*Environment)(nil)

type contractExt struct {
	address primitives.AccountID
}

func (c contractExt) Address() primitives.AccountID { return c.address }

// Environment is the host environment of a chain extension call made by
// a contract. It is owned by the call.
type Environment struct {
	id         extension.Identifier
	ext        contractExt
	input      []byte
	output     []byte
	outputCap  uint32
	skipOutput bool
	meter      *GasMeter
}

// NewEnvironment returns the environment of a chain extension call.
func NewEnvironment(request CallRequest, meter *GasMeter) *Environment {
	return &Environment{
		id:         extension.Identifier(request.ID),
		ext:        contractExt{address: request.Contract},
		input:      request.Input,
		outputCap:  request.OutputCapacity,
		skipOutput: request.SkipOutput,
		meter:      meter,
	}
}

// FuncID returns the low 16 bits of the call identifier.
func (e *Environment) FuncID() uint16 { return e.id.FuncID() }

// ExtID returns the high 16 bits of the call identifier.
func (e *Environment) ExtID() uint16 { return e.id.ExtID() }

// ChargeWeight charges the gas meter.
func (e *Environment) ChargeWeight(amount primitives.Weight) (extension.ChargedAmount, error) {
	err := e.meter.Charge(amount)
	if err != nil {
		logger.Debugf("out of gas charging %s, remaining %s", amount, e.meter.Remaining())
		return extension.ChargedAmount{}, err
	}
	return extension.NewChargedAmount(amount), nil
}

// AdjustWeight refunds the unused part of a charge.
func (e *Environment) AdjustWeight(charged extension.ChargedAmount, actual primitives.Weight) {
	e.meter.Adjust(charged.Amount(), actual)
}

// InLen returns the length of the contract input.
func (e *Environment) InLen() uint32 { return uint32(len(e.input)) }

// Read returns up to maxLen bytes of the contract input.
func (e *Environment) Read(maxLen uint32) ([]byte, error) {
	n := min(int(maxLen), len(e.input))
	read := make([]byte, n)
	copy(read, e.input[:n])
	return read, nil
}

// Write copies the buffer to the contract output buffer.
func (e *Environment) Write(buffer []byte, allowSkip bool, weightPerByte *primitives.Weight) error {
	if e.skipOutput {
		if allowSkip {
			return nil
		}
		return ErrOutOfBounds
	}

	if uint32(len(buffer)) > e.outputCap {
		return ErrOutputBufferTooSmall
	}

	if weightPerByte != nil {
		_, err := e.ChargeWeight(weightPerByte.Mul(uint64(len(buffer))))
		if err != nil {
			return err
		}
	}

	e.output = append(e.output[:0], buffer...)
	return nil
}

// Ext returns the calling contract context.
func (e *Environment) Ext() extension.Ext { return e.ext }

// Output returns the bytes written to the contract output buffer.
func (e *Environment) Output() []byte { return e.output }
