// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"encoding/binary"
	"fmt"
)

// Call categories, carried by the first byte of an identifier.
const (
	CategoryDispatch  uint8 = 0
	CategoryReadState uint8 = 1
)

// Identifier is the 32 bits function identifier a contract calls the
// extension with. Its little endian bytes are
// [category, version, module, index]: the function id is made of the
// category and version bytes, the extension id of the module and index
// bytes.
type Identifier uint32

// NewIdentifier returns the identifier made of the bytes given.
func NewIdentifier(category, version, module, index uint8) Identifier {
	return Identifier(binary.LittleEndian.Uint32([]byte{category, version, module, index}))
}

// IdentifierFromParts returns the identifier made of the extension and
// function ids given.
func IdentifierFromParts(extID, funcID uint16) Identifier {
	return Identifier(uint32(extID)<<16 | uint32(funcID))
}

// IdentifierOf returns the identifier of the current call.
func IdentifierOf(ids IDs) Identifier {
	return IdentifierFromParts(ids.ExtID(), ids.FuncID())
}

// FuncID returns the low 16 bits of the identifier.
func (id Identifier) FuncID() uint16 { return uint16(id) }

// ExtID returns the high 16 bits of the identifier.
func (id Identifier) ExtID() uint16 { return uint16(id >> 16) }

// Bytes returns the little endian bytes of the identifier.
func (id Identifier) Bytes() (b [4]byte) {
	binary.LittleEndian.PutUint32(b[:], uint32(id))
	return b
}

// Category returns the call category byte.
func (id Identifier) Category() uint8 { return uint8(id) }

// Version returns the protocol version byte.
func (id Identifier) Version() uint8 { return uint8(id >> 8) }

// Module returns the pallet index byte.
func (id Identifier) Module() uint8 { return uint8(id >> 16) }

// Index returns the call or read index byte within the pallet.
func (id Identifier) Index() uint8 { return uint8(id >> 24) }

func (id Identifier) String() string {
	return fmt.Sprintf("0x%08x (category: %d, version: %d, module: %d, index: %d)",
		uint32(id), id.Category(), id.Version(), id.Module(), id.Index())
}
