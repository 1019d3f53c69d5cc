// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package status converts runtime dispatch errors into the packed 32 bits
// status codes returned to contracts, and back for debugging.
//
// Encode, Code and ToStatus implement the legacy conversion, which
// shifts errors not representable in version 0 behind an Other
// discriminant. They are a standalone library API: the devnet runtime
// converts with the version 0 Unknown rotation of lib/primitives/v0
// instead. Decode reads both encodings back for the CLI.
package status

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

var (
	// UnknownCall is the error of calls matching no function.
	UnknownCall = primitives.Other("UnknownCall")
	// DecodingFailed is the error of calls with an undecodable input.
	DecodingFailed = primitives.Other("DecodingFailed")
)

// Status codes of the two pinned errors, for every version.
var (
	UnknownCallEncoded    = [4]byte{254, 0, 0, 0}
	DecodingFailedEncoded = [4]byte{255, 0, 0, 0}
)

// ErrMalformedStatus is returned when a status code does not decode to
// a dispatch error.
var ErrMalformedStatus = errors.New("malformed status code")

// Dispatch error discriminants representable in version 0.
var (
	unitErrors         = []byte{1, 2, 4, 5, 6, 10, 11, 12, 13, 254, 255}
	doubleNestedErrors = []byte{3}
)

// nestedLimits holds the largest nested variant of single nested
// errors in version 0.
var nestedLimits = map[byte]byte{
	7: 9, // token
	8: 2, // arithmetic
	9: 1, // transactional
}

// Encode returns the 4 bytes status of the error for the protocol version
// given. The error encoding is truncated to 4 bytes. Errors of version 0
// which are not representable in version 0 are shifted one byte to the
// right behind an Other discriminant. Unknown versions return the
// unknown call status.
func Encode(err primitives.DispatchError, version uint8) (encoded [4]byte) {
	switch err {
	case UnknownCall:
		encoded = UnknownCallEncoded
	case DecodingFailed:
		encoded = DecodingFailedEncoded
	default:
		copy(encoded[:], err.Bytes())
	}

	if version != 0 {
		return UnknownCallEncoded
	}
	if unknownInVersion0(encoded) {
		encoded = [4]byte{0, encoded[0], encoded[1], encoded[2]}
	}
	return encoded
}

// Code returns the status code of the error for the protocol version
// given: its encoding read as a little endian integer.
func Code(err primitives.DispatchError, version uint8) uint32 {
	encoded := Encode(err, version)
	return binary.LittleEndian.Uint32(encoded[:])
}

// ToStatus is Code with the signature of a versioned error converter.
func ToStatus(err primitives.DispatchError, version uint8) (uint32, error) {
	return Code(err, version), nil
}

func unknownInVersion0(encoded [4]byte) bool {
	code := encoded[0]
	switch {
	case slices.Contains(unitErrors, code):
		return anyNonZero(encoded[1:])
	case slices.Contains(doubleNestedErrors, code):
		return anyNonZero(encoded[3:])
	}
	limit, ok := nestedLimits[code]
	if !ok {
		return true
	}
	return encoded[1] > limit || anyNonZero(encoded[2:])
}

func anyNonZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return true
		}
	}
	return false
}

// Status is a status code decoded for debugging.
type Status struct {
	Code uint32
	// Error is the dispatch error of the status. Module errors only carry
	// the error bytes which fit in the status.
	Error primitives.DispatchError
	// Remapped is true if the error was not representable in version 0
	// and its bytes were shifted behind an Other discriminant.
	Remapped bool
}

func (s Status) String() string {
	if s.Code == 0 {
		return "Ok"
	}
	if s.Remapped {
		return fmt.Sprintf("%s (remapped for version 0)", s.Error)
	}
	return s.Error.Error()
}

// Decode decodes a version 0 status code. Decoding a remapped status
// returns the original error with its last byte lost.
func Decode(code uint32) (status Status, err error) {
	status.Code = code
	var encoded [4]byte
	binary.LittleEndian.PutUint32(encoded[:], code)

	switch encoded {
	case [4]byte{}:
		status.Error = primitives.Other("")
		return status, nil
	case UnknownCallEncoded:
		status.Error = UnknownCall
		return status, nil
	case DecodingFailedEncoded:
		status.Error = DecodingFailed
		return status, nil
	}

	if encoded[0] == 0 {
		status.Remapped = true
		encoded = [4]byte{encoded[1], encoded[2], encoded[3], 0}
	}

	// module errors encode with 6 bytes
	padded := make([]byte, 6)
	copy(padded, encoded[:])
	err = scale.Unmarshal(padded, &status.Error)
	if err != nil {
		return status, fmt.Errorf("%w: 0x%08x: %w", ErrMalformedStatus, code, err)
	}
	return status, nil
}
