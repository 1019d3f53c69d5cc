// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package primitives

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// AccountID identifies an account, including contract accounts.
type AccountID [32]byte

// NewAccountID returns an account id with the given bytes, left aligned
// and zero padded or truncated to 32 bytes.
func NewAccountID(b []byte) (id AccountID) {
	copy(id[:], b)
	return id
}

// AccountIDFromUint64 returns the account id used by test accounts, with
// the little endian value in its first 8 bytes.
func AccountIDFromUint64(n uint64) (id AccountID) {
	for i := 0; i < 8; i++ {
		id[i] = byte(n >> (8 * i))
	}
	return id
}

// ParseAccountID parses a 0x prefixed hex string of 32 bytes.
func ParseAccountID(s string) (id AccountID, err error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return id, fmt.Errorf("decoding hex: %w", err)
	}
	if len(decoded) != len(id) {
		return id, fmt.Errorf("account id has %d bytes instead of %d", len(decoded), len(id))
	}
	copy(id[:], decoded)
	return id, nil
}

func (id AccountID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Hash is a 256 bits hash.
type Hash [32]byte

// Blake2b256 returns the 256 bits blake2b hash of the data given.
func Blake2b256(data []byte) Hash {
	return blake2b.Sum256(data)
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}
