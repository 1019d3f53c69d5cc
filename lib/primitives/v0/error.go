// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package v0 contains the version 0 contract facing types.
package v0

import (
	"encoding/binary"
	"fmt"

	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// ErrorKind is the discriminant of a version 0 Error.
type ErrorKind uint8

// Version 0 error kinds. The values 0 to 13 match the discriminants of
// the runtime dispatch error.
const (
	Other             ErrorKind = 0
	CannotLookup      ErrorKind = 1
	BadOrigin         ErrorKind = 2
	Module            ErrorKind = 3
	ConsumerRemaining ErrorKind = 4
	NoProviders       ErrorKind = 5
	TooManyConsumers  ErrorKind = 6
	Token             ErrorKind = 7
	Arithmetic        ErrorKind = 8
	Transactional     ErrorKind = 9
	Exhausted         ErrorKind = 10
	Corruption        ErrorKind = 11
	Unavailable       ErrorKind = 12
	RootNotAllowed    ErrorKind = 13
	Unknown           ErrorKind = 254
	DecodingFailed    ErrorKind = 255
)

func (k ErrorKind) String() string {
	switch k {
	case Unknown:
		return "Unknown"
	case DecodingFailed:
		return "DecodingFailed"
	}
	if k <= RootNotAllowed {
		return primitives.DispatchErrorKind(k).String()
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is the error returned to version 0 contracts.
// The field used depends on the kind:
//   - Module: Index is the pallet index and Error its first two error bytes.
//   - Token, Arithmetic and Transactional: Nested is the nested variant.
//   - Unknown: DispatchErrorIndex, ErrorIndex and Error[0] describe an error
//     which has no representation in version 0.
type Error struct {
	Kind               ErrorKind
	Index              uint8
	Error              [2]byte
	Nested             uint8
	DispatchErrorIndex uint8
	ErrorIndex         uint8
}

// NewModule returns a module error.
func NewModule(index uint8, err [2]byte) Error {
	return Error{Kind: Module, Index: index, Error: err}
}

// NewUnknown returns an error with no version 0 representation.
func NewUnknown(dispatchErrorIndex, errorIndex, err uint8) Error {
	return Error{
		Kind:               Unknown,
		DispatchErrorIndex: dispatchErrorIndex,
		ErrorIndex:         errorIndex,
		Error:              [2]byte{err},
	}
}

// FromDispatchError converts a runtime dispatch error.
// The contracts pallet decoding failed error maps to DecodingFailed and
// module errors keep only their first two error bytes.
func FromDispatchError(err primitives.DispatchError, decodingFailed primitives.DispatchError) Error {
	if err == decodingFailed {
		return Error{Kind: DecodingFailed}
	}

	switch err.Kind() {
	case primitives.KindModule:
		moduleErr, _ := err.ModuleError()
		return NewModule(moduleErr.Index, [2]byte{moduleErr.Error[0], moduleErr.Error[1]})
	case primitives.KindToken:
		nested, _ := err.TokenError()
		return Error{Kind: Token, Nested: uint8(nested)}
	case primitives.KindArithmetic:
		nested, _ := err.ArithmeticError()
		return Error{Kind: Arithmetic, Nested: uint8(nested)}
	case primitives.KindTransactional:
		nested, _ := err.TransactionalError()
		return Error{Kind: Transactional, Nested: uint8(nested)}
	case primitives.KindTrie:
		encoded := err.Bytes()
		return NewUnknown(encoded[0], encoded[1], 0)
	}

	if err.Kind() <= primitives.KindRootNotAllowed {
		return Error{Kind: ErrorKind(err.Kind())}
	}
	encoded := err.Bytes()
	return NewUnknown(encoded[0], 0, 0)
}

// Encode writes the SCALE encoding of the error.
func (e Error) Encode(encoder scale.Encoder) error {
	switch e.Kind {
	case Module:
		return encoder.Write([]byte{byte(e.Kind), e.Index, e.Error[0], e.Error[1]})
	case Token, Arithmetic, Transactional:
		return encoder.Write([]byte{byte(e.Kind), e.Nested})
	case Unknown:
		return encoder.Write([]byte{byte(e.Kind), e.DispatchErrorIndex, e.ErrorIndex, e.Error[0]})
	}
	return encoder.PushByte(byte(e.Kind))
}

// Decode reads the SCALE encoding of an error.
func (e *Error) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}

	decoded := Error{Kind: ErrorKind(b)}
	switch {
	case decoded.Kind == Module:
		payload := make([]byte, 3)
		err = decoder.Read(payload)
		decoded.Index = payload[0]
		decoded.Error = [2]byte{payload[1], payload[2]}
	case decoded.Kind == Token || decoded.Kind == Arithmetic || decoded.Kind == Transactional:
		decoded.Nested, err = decoder.ReadOneByte()
	case decoded.Kind == Unknown:
		payload := make([]byte, 3)
		err = decoder.Read(payload)
		decoded.DispatchErrorIndex = payload[0]
		decoded.ErrorIndex = payload[1]
		decoded.Error = [2]byte{payload[2]}
	case decoded.Kind == DecodingFailed || decoded.Kind <= RootNotAllowed:
	default:
		return fmt.Errorf("%w: error %d", scale.ErrUnknownVariant, b)
	}
	if err != nil {
		return err
	}

	*e = decoded
	return nil
}

// Uint32 returns the status code of the error: its encoding resized to
// 4 bytes and read as a little endian integer.
func (e Error) Uint32() uint32 {
	var code [4]byte
	copy(code[:], scale.MustMarshal(e))
	return binary.LittleEndian.Uint32(code[:])
}

// FromUint32 decodes a status code produced by Uint32.
func FromUint32(code uint32) (e Error, err error) {
	var encoded [4]byte
	binary.LittleEndian.PutUint32(encoded[:], code)
	err = scale.Unmarshal(encoded[:], &e)
	if err != nil {
		return e, err
	}
	return e, nil
}

func (e Error) String() string {
	switch e.Kind {
	case Module:
		return fmt.Sprintf("Module { index: %d, error: [%d, %d] }", e.Index, e.Error[0], e.Error[1])
	case Token:
		return "Token(" + primitives.TokenError(e.Nested).String() + ")"
	case Arithmetic:
		return "Arithmetic(" + primitives.ArithmeticError(e.Nested).String() + ")"
	case Transactional:
		return "Transactional(" + primitives.TransactionalError(e.Nested).String() + ")"
	case Unknown:
		return fmt.Sprintf("Unknown { dispatch_error_index: %d, error_index: %d, error: %d }",
			e.DispatchErrorIndex, e.ErrorIndex, e.Error[0])
	}
	return e.Kind.String()
}
