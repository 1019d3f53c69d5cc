// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package devnet

import (
	"fmt"

	"github.com/ChainSafe/chainext/internal/pallets/contracts"
	"github.com/ChainSafe/chainext/internal/pallets/fungibles"
	"github.com/ChainSafe/chainext/internal/pallets/system"
	"github.com/ChainSafe/chainext/lib/frame"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// RuntimeCall is a call to one of the pallets of the runtime. Only the
// field of the pallet index is used.
type RuntimeCall struct {
	Pallet    uint8
	System    system.Call
	Contracts contracts.Call
	Fungibles fungibles.Call

	runtime *Runtime
}

// SystemCall wraps a system pallet call.
func SystemCall(call system.Call) RuntimeCall {
	return RuntimeCall{Pallet: system.Index, System: call}
}

// ContractsCall wraps a contracts pallet call.
func ContractsCall(call contracts.Call) RuntimeCall {
	return RuntimeCall{Pallet: contracts.Index, Contracts: call}
}

// FungiblesCall wraps a fungibles pallet call.
func FungiblesCall(call fungibles.Call) RuntimeCall {
	return RuntimeCall{Pallet: fungibles.Index, Fungibles: call}
}

// Encode writes the SCALE encoding of the call: the pallet index
// followed by the pallet call.
func (c RuntimeCall) Encode(encoder scale.Encoder) error {
	err := encoder.PushByte(c.Pallet)
	if err != nil {
		return err
	}
	switch c.Pallet {
	case system.Index:
		return encoder.Encode(c.System)
	case contracts.Index:
		return encoder.Encode(c.Contracts)
	case fungibles.Index:
		return encoder.Encode(c.Fungibles)
	default:
		return fmt.Errorf("%w: pallet %d", scale.ErrUnknownVariant, c.Pallet)
	}
}

// Decode reads the SCALE encoding of a call.
func (c *RuntimeCall) Decode(decoder scale.Decoder) (err error) {
	pallet, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}

	decoded := RuntimeCall{Pallet: pallet}
	switch pallet {
	case system.Index:
		err = decoder.Decode(&decoded.System)
	case contracts.Index:
		err = decoder.Decode(&decoded.Contracts)
	case fungibles.Index:
		err = decoder.Decode(&decoded.Fungibles)
	default:
		return fmt.Errorf("%w: pallet %d", scale.ErrUnknownVariant, pallet)
	}
	if err != nil {
		return err
	}

	*c = decoded
	return nil
}

// GetDispatchInfo returns the dispatch information of the pallet call.
func (c RuntimeCall) GetDispatchInfo() frame.DispatchInfo {
	switch c.Pallet {
	case system.Index:
		return c.System.GetDispatchInfo()
	case contracts.Index:
		return c.Contracts.GetDispatchInfo()
	default:
		return c.Fungibles.GetDispatchInfo()
	}
}

func (c RuntimeCall) String() string {
	switch c.Pallet {
	case system.Index:
		return c.System.String()
	case contracts.Index:
		return c.Contracts.String()
	case fungibles.Index:
		return c.Fungibles.String()
	default:
		return fmt.Sprintf("RuntimeCall(%d)", c.Pallet)
	}
}

// Dispatch dispatches the call if the origin filters allow it. The
// pallet call runs in a storage transaction, so a failed call leaves no
// change behind.
func (c RuntimeCall) Dispatch(origin *frame.Origin[RuntimeCall]) (post frame.PostDispatchInfo, err error) {
	if c.runtime == nil {
		return post, ErrUnboundCall
	}
	if !origin.Filter(c) {
		c.runtime.logger.Debugf("call %s filtered for origin %s", c, origin.Raw())
		return post, system.ErrCallFiltered
	}

	r := c.runtime
	raw := origin.Raw()
	err = r.state.WithTransaction(func() (err error) {
		switch c.Pallet {
		case system.Index:
			post, err = c.System.Dispatch(r.System, raw)
		case contracts.Index:
			post, err = c.Contracts.Dispatch(r.Contracts, raw)
		case fungibles.Index:
			post, err = c.Fungibles.Dispatch(r.Fungibles, raw)
		default:
			err = fmt.Errorf("%w: pallet %d", scale.ErrUnknownVariant, c.Pallet)
		}
		return err
	})
	return post, err
}

// bind returns the call dispatching against the runtime given.
func (c RuntimeCall) bind(r *Runtime) RuntimeCall {
	c.runtime = r
	return c
}
