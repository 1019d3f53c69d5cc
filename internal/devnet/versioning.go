// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package devnet

import (
	"fmt"

	"github.com/ChainSafe/chainext/internal/pallets/contracts"
	"github.com/ChainSafe/chainext/lib/primitives"
	v0 "github.com/ChainSafe/chainext/lib/primitives/v0"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// V0 is the only protocol version of the runtime.
const V0 uint8 = 0

// VersionedRuntimeCall is a call prefixed with the version of the
// contract API it was encoded with.
type VersionedRuntimeCall struct {
	Version uint8
	Call    RuntimeCall
}

// Encode writes the version byte followed by the call.
func (v VersionedRuntimeCall) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, v.Version, v.Call)
}

// Decode reads a versioned call. Only version 0 is known.
func (v *VersionedRuntimeCall) Decode(decoder scale.Decoder) error {
	version, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	if version != V0 {
		return fmt.Errorf("%w: call version %d", scale.ErrUnknownVariant, version)
	}
	decoded := VersionedRuntimeCall{Version: version}
	err = decoder.Decode(&decoded.Call)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// VersionedRuntimeRead is a read prefixed with the version of the
// contract API it was encoded with.
type VersionedRuntimeRead struct {
	Version uint8
	Read    RuntimeRead
}

// Encode writes the version byte followed by the read.
func (v VersionedRuntimeRead) Encode(encoder scale.Encoder) error {
	return scale.EncodeVariant(encoder, v.Version, v.Read)
}

// Decode reads a versioned read. Only version 0 is known.
func (v *VersionedRuntimeRead) Decode(decoder scale.Decoder) error {
	version, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	if version != V0 {
		return fmt.Errorf("%w: read version %d", scale.ErrUnknownVariant, version)
	}
	decoded := VersionedRuntimeRead{Version: version}
	err = decoder.Decode(&decoded.Read)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// ToVersion returns the shape of the read result for the version
// given. Version 0 results are written as they are.
func ToVersion(result RuntimeResult, version uint8) (any, error) {
	if version != V0 {
		return nil, contracts.ErrDecodingFailed
	}
	return result, nil
}

// ToStatus returns the status code of a dispatch error for the version
// given: the version 0 error read as a little endian integer.
func ToStatus(err primitives.DispatchError, version uint8) (uint32, error) {
	if version != V0 {
		return 0, contracts.ErrDecodingFailed
	}
	return v0.FromDispatchError(err, contracts.ErrDecodingFailed).Uint32(), nil
}
