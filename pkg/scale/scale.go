// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package scale implements the SCALE codec helpers shared by the runtime
// types, on top of the go-substrate-rpc-client codec.
package scale

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"

	codec "github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// Encoder writes SCALE encoded values.
type Encoder = codec.Encoder

// Decoder reads SCALE encoded values.
type Decoder = codec.Decoder

// Encodeable is implemented by types with a custom SCALE encoding.
type Encodeable = codec.Encodeable

// Decodeable is implemented by types with a custom SCALE decoding.
type Decodeable = codec.Decodeable

var (
	// ErrDecoding is wrapped by every error returned by Unmarshal.
	ErrDecoding = errors.New("decoding")
	// ErrCompactOverflow is returned when a compact integer does not fit the target width.
	ErrCompactOverflow = errors.New("compact integer overflows")
	// ErrUnknownVariant is returned when an enum discriminant is not recognised.
	ErrUnknownVariant = errors.New("unknown variant")
)

// NewEncoder returns an encoder writing to the writer given.
func NewEncoder(writer io.Writer) *Encoder {
	return codec.NewEncoder(writer)
}

// NewDecoder returns a decoder reading from the reader given.
func NewDecoder(reader io.Reader) *Decoder {
	return codec.NewDecoder(reader)
}

// Marshal returns the SCALE encoding of v.
func Marshal(v interface{}) (b []byte, err error) {
	buffer := bytes.NewBuffer(nil)
	err = NewEncoder(buffer).Encode(v)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// MustMarshal is Marshal panicking on error. It is meant for values whose
// encoding cannot fail, such as fixed size structures.
func MustMarshal(v interface{}) []byte {
	b, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// Unmarshal decodes data into dst, which must be a pointer.
// Trailing bytes are ignored. Any failure, including a panic raised while
// decoding, is returned as an error wrapping ErrDecoding.
func Unmarshal(data []byte, dst interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: recovered: %v", ErrDecoding, r)
		}
	}()

	err = NewDecoder(bytes.NewReader(data)).Decode(dst)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDecoding, err)
	}
	return nil
}

// EncodeCompact writes v as a compact integer.
func EncodeCompact(encoder Encoder, v uint64) error {
	return encoder.EncodeUintCompact(*new(big.Int).SetUint64(v))
}

// DecodeCompact reads a compact integer fitting in 64 bits.
func DecodeCompact(decoder Decoder) (uint64, error) {
	value, err := decoder.DecodeUintCompact()
	if err != nil {
		return 0, err
	}
	if !value.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrCompactOverflow, value)
	}
	return value.Uint64(), nil
}

// EncodeBytes writes a compact length prefixed byte vector.
func EncodeBytes(encoder Encoder, b []byte) error {
	err := EncodeCompact(encoder, uint64(len(b)))
	if err != nil {
		return err
	}
	return encoder.Write(b)
}

const readChunkSize = 4096

// DecodeBytes reads a compact length prefixed byte vector. The vector is
// read in chunks so a forged length prefix cannot force a large allocation
// before the input runs out.
func DecodeBytes(decoder Decoder) ([]byte, error) {
	length, err := DecodeCompact(decoder)
	if err != nil {
		return nil, err
	}
	if length > math.MaxInt32 {
		return nil, fmt.Errorf("%w: byte vector length %d", ErrCompactOverflow, length)
	}

	remaining := int(length)
	b := make([]byte, 0, min(remaining, readChunkSize))
	for remaining > 0 {
		chunk := make([]byte, min(remaining, readChunkSize))
		err = decoder.Read(chunk)
		if err != nil {
			return nil, err
		}
		b = append(b, chunk...)
		remaining -= len(chunk)
	}
	return b, nil
}

// EncodeVariant writes an enum discriminant followed by the encoding of
// each of the fields given.
func EncodeVariant(encoder Encoder, index uint8, fields ...interface{}) error {
	err := encoder.PushByte(index)
	if err != nil {
		return err
	}
	for _, field := range fields {
		switch value := field.(type) {
		case []byte:
			err = EncodeBytes(encoder, value)
		default:
			err = encoder.Encode(value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// DecodeFields reads the fields of an enum variant into the pointers
// given, byte vectors being read with DecodeBytes.
func DecodeFields(decoder Decoder, fields ...interface{}) (err error) {
	for _, field := range fields {
		switch target := field.(type) {
		case *[]byte:
			*target, err = DecodeBytes(decoder)
		default:
			err = decoder.Decode(target)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
