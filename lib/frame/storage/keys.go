// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package storage

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"
	"golang.org/x/crypto/blake2b"
)

// Hasher hashes the encoded key of a storage map entry.
type Hasher func(data []byte) []byte

func twox64(data []byte, seed uint64) []byte {
	hasher := xxhash.NewS64(seed)
	_, _ = hasher.Write(data)
	hash := make([]byte, 8)
	binary.LittleEndian.PutUint64(hash, hasher.Sum64())
	return hash
}

// Twox128 returns the concatenation of the xxHash64 of the data with
// seeds 0 and 1.
func Twox128(data []byte) []byte {
	return append(twox64(data, 0), twox64(data, 1)...)
}

// Twox64Concat returns the xxHash64 of the data followed by the data.
func Twox64Concat(data []byte) []byte {
	return append(twox64(data, 0), data...)
}

// Blake2_128Concat returns the 128 bits blake2b hash of the data followed
// by the data.
func Blake2_128Concat(data []byte) []byte { //nolint:revive
	hasher, err := blake2b.New(16, nil)
	if err != nil {
		panic(err) // only fails for invalid sizes
	}
	_, _ = hasher.Write(data)
	return append(hasher.Sum(nil), data...)
}

// Identity returns a copy of the data.
func Identity(data []byte) []byte {
	return append([]byte(nil), data...)
}

// PrefixKey returns the key prefix of a pallet storage item.
func PrefixKey(pallet, item string) []byte {
	return append(Twox128([]byte(pallet)), Twox128([]byte(item))...)
}

func joinKey(parts ...[]byte) []byte {
	length := 0
	for _, part := range parts {
		length += len(part)
	}
	key := make([]byte, 0, length)
	for _, part := range parts {
		key = append(key, part...)
	}
	return key
}
