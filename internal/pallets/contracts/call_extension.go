// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"fmt"

	"github.com/ChainSafe/chainext/lib/extension"
	"github.com/ChainSafe/chainext/lib/primitives"
)

// ChainExtension is the chain extension of the runtime.
type ChainExtension interface {
	Call(env extension.Environment) (extension.RetVal, error)
}

// CallRequest is a chain extension call made by a contract.
type CallRequest struct {
	// ID is the function identifier.
	ID uint32
	// Contract is the account of the calling contract.
	Contract primitives.AccountID
	// Input is the contract input buffer.
	Input []byte
	// OutputCapacity is the size of the contract output buffer.
	OutputCapacity uint32
	// SkipOutput is set if the contract passed the sentinel output
	// pointer, opting out of the output.
	SkipOutput bool
	// GasLimit is the weight available to the call.
	GasLimit primitives.Weight
}

// CallResult is the outcome of a chain extension call.
type CallResult struct {
	// Status is the status code returned to the contract.
	Status extension.RetVal
	// Output is the content of the contract output buffer.
	Output      []byte
	GasConsumed primitives.Weight
	// Err is set if the call trapped the contract. Its state changes are
	// reverted.
	Err error
}

func (c CallResult) String() string {
	if c.Err != nil {
		return fmt.Sprintf("trapped: %s (gas consumed %s)", c.Err, c.GasConsumed)
	}
	return fmt.Sprintf("status %d, output 0x%x (gas consumed %s)", c.Status, c.Output, c.GasConsumed)
}

// CallChainExtension runs a chain extension call on behalf of a
// contract, inside a storage transaction reverted if the call traps.
func (p *Pallet) CallChainExtension(chainExtension ChainExtension, request CallRequest) (result CallResult) {
	meter := NewGasMeter(request.GasLimit)
	defer func() {
		result.GasConsumed = meter.Consumed()
	}()

	if chainExtension == nil {
		result.Err = ErrNoChainExtension
		return result
	}

	env := NewEnvironment(request, meter)
	err := p.state.WithTransaction(func() (err error) {
		result.Status, err = chainExtension.Call(env)
		return err
	})
	if err != nil {
		logger.Debugf("contract %s trapped calling the chain extension: %s", request.Contract, err)
		result.Err = err
		return result
	}
	result.Output = env.Output()
	return result
}
