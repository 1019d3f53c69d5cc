// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"fmt"

	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/frame"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// Readable is a read of runtime state with a result of type R.
type Readable[R any] interface {
	// Weight returns the worst case weight of the read.
	Weight() primitives.Weight
	// Read performs the read. It must not modify any state.
	Read() R
}

// Converter encodes a read result for the contract.
type Converter[R any] interface {
	Convert(result R, env Environment) ([]byte, error)
}

// DefaultConverter SCALE encodes the read result.
type DefaultConverter[R any] struct{}

// Convert returns the SCALE encoding of the result.
func (DefaultConverter[R]) Convert(result R, _ Environment) ([]byte, error) {
	return scale.Marshal(result)
}

// VersionFunc converts a read result into the value expected by the
// protocol version given. It returns an error if the version is not
// supported.
type VersionFunc[R any] func(result R, version uint8) (any, error)

// VersionedResultConverter encodes the read result in the shape of the
// protocol version of the call identifier.
type VersionedResultConverter[R any] struct {
	ToVersion VersionFunc[R]
}

// Convert returns the SCALE encoding of the versioned result.
func (v VersionedResultConverter[R]) Convert(result R, env Environment) ([]byte, error) {
	version := IdentifierOf(env).Version()
	versioned, err := v.ToVersion(result, version)
	if err != nil {
		return nil, err
	}
	encoded, err := scale.Marshal(versioned)
	if err != nil {
		return nil, fmt.Errorf("encoding result for version %d: %w", version, err)
	}
	return encoded, nil
}

// ReadState reads runtime state for the calling contract and writes
// the result to the contract output.
type ReadState[Read Readable[Result], Result any] struct {
	matcher      Matcher
	decoder      Decoder[Read]
	filter       frame.Contains[Read]
	converter    Converter[Result]
	schedule     Schedule
	callFiltered primitives.DispatchError
	logger       log.LeveledLogger
}

// NewReadState returns a function performing the reads decoded by the
// decoder. Reads not contained in the filter fail with the call
// filtered error of the configuration.
func NewReadState[Read Readable[Result], Result any](config Config, matcher Matcher,
	decoder Decoder[Read], filter frame.Contains[Read], converter Converter[Result],
	options ...FunctionOption) *ReadState[Read, Result] {
	settings := newFunctionSettings("read-state", options)
	return &ReadState[Read, Result]{
		matcher:      matcher,
		decoder:      decoder,
		filter:       filter,
		converter:    converter,
		schedule:     config.Schedule,
		callFiltered: config.CallFiltered,
		logger:       settings.logger,
	}
}

// Matches returns true if the function handles the call.
func (r *ReadState[Read, Result]) Matches(ids IDs) bool {
	return r.matcher.Matches(ids)
}

// Execute decodes the read, charges its weight, performs it if the
// filter allows it and writes the converted result to the contract.
func (r *ReadState[Read, Result]) Execute(env Environment) (RetVal, error) {
	read, err := r.decoder.Decode(env)
	if err != nil {
		return 0, err
	}

	weight := read.Weight()
	charged, err := env.ChargeWeight(weight)
	if err != nil {
		return 0, err
	}
	r.logger.Debugf("pre-read weight charged: weight=%s, charged=%s", weight, charged.Amount())

	if !r.filter.Contains(read) {
		r.logger.Debugf("read filtered: %v", read)
		return 0, r.callFiltered
	}

	result := read.Read()
	r.logger.Debugf("read performed: %v", result)

	output, err := r.converter.Convert(result, env)
	if err != nil {
		return 0, err
	}

	_, err = env.ChargeWeight(r.schedule.WriteToContract(uint32(len(output))))
	if err != nil {
		return 0, err
	}

	err = env.Write(output, false, nil)
	if err != nil {
		return 0, err
	}
	r.logger.Debugf("output written: 0x%x", output)
	return 0, nil
}
