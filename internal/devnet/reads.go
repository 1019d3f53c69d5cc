// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package devnet

import (
	"fmt"

	"github.com/ChainSafe/chainext/internal/pallets/fungibles"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// RuntimeRead is a state read of one of the pallets of the runtime.
// Only the fungibles pallet exposes reads.
type RuntimeRead struct {
	Pallet    uint8
	Fungibles fungibles.Read

	runtime *Runtime
}

// FungiblesRead wraps a fungibles pallet read.
func FungiblesRead(read fungibles.Read) RuntimeRead {
	return RuntimeRead{Pallet: fungibles.Index, Fungibles: read}
}

// Encode writes the SCALE encoding of the read.
func (r RuntimeRead) Encode(encoder scale.Encoder) error {
	if r.Pallet != fungibles.Index {
		return fmt.Errorf("%w: pallet %d", scale.ErrUnknownVariant, r.Pallet)
	}
	err := encoder.PushByte(r.Pallet)
	if err != nil {
		return err
	}
	return encoder.Encode(r.Fungibles)
}

// Decode reads the SCALE encoding of a read.
func (r *RuntimeRead) Decode(decoder scale.Decoder) error {
	pallet, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	if pallet != fungibles.Index {
		return fmt.Errorf("%w: pallet %d", scale.ErrUnknownVariant, pallet)
	}

	decoded := RuntimeRead{Pallet: pallet}
	err = decoder.Decode(&decoded.Fungibles)
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

// Weight returns the weight of the read.
func (r RuntimeRead) Weight() primitives.Weight {
	return r.Fungibles.Weight()
}

// Read performs the read.
func (r RuntimeRead) Read() RuntimeResult {
	return RuntimeResult{
		Pallet:    r.Pallet,
		Fungibles: r.Fungibles.Execute(r.runtime.Fungibles),
	}
}

func (r RuntimeRead) String() string {
	return r.Fungibles.String()
}

func (r RuntimeRead) bind(runtime *Runtime) RuntimeRead {
	r.runtime = runtime
	return r
}

// RuntimeResult is the result of a RuntimeRead.
type RuntimeResult struct {
	Pallet    uint8
	Fungibles fungibles.ReadResult
}

// Encode writes the encoding of the inner result, without the pallet
// index.
func (r RuntimeResult) Encode(encoder scale.Encoder) error {
	return encoder.Encode(r.Fungibles)
}

func (r RuntimeResult) String() string {
	return r.Fungibles.String()
}
