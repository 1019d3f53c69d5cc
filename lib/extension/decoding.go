// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

// Processor transforms the contract input before it is decoded.
type Processor interface {
	Process(input []byte, ids IDs) []byte
}

// ProcessorFunc is a function implementing Processor.
type ProcessorFunc func(input []byte, ids IDs) []byte

// Process returns f(input, ids).
func (f ProcessorFunc) Process(input []byte, ids IDs) []byte { return f(input, ids) }

// Identity is the processor leaving the input unchanged.
type Identity struct{}

// Process returns the input.
func (Identity) Process(input []byte, _ IDs) []byte { return input }

// Prepender is the processor prepending the version, module and index
// bytes of the identifier to the input, so the contract input decodes
// as a versioned call or read.
type Prepender struct{}

// Process returns [version, module, index] followed by the input.
func (Prepender) Process(input []byte, ids IDs) []byte {
	id := IdentifierOf(ids)
	processed := make([]byte, 0, 3+len(input))
	processed = append(processed, id.Version(), id.Module(), id.Index())
	return append(processed, input...)
}

// Decoder decodes the contract input into a value of type T.
type Decoder[T any] interface {
	Decode(env Environment) (T, error)
}

// Decodes is the default decoder. It charges the weight of reading the
// whole contract input, reads it, processes it and decodes it with the
// SCALE codec. Any failure to decode returns the configured decoding
// failed error, and the weight charged is kept.
type Decodes[T any] struct {
	schedule  Schedule
	failed    primitives.DispatchError
	processor Processor
	logger    log.LeveledLogger
}

// DecodesOption configures a Decodes decoder.
type DecodesOption func(settings *decodesSettings)

type decodesSettings struct {
	processor Processor
	logger    log.LeveledLogger
}

// WithProcessor sets the processor applied to the input before decoding.
// It defaults to Identity.
func WithProcessor(processor Processor) DecodesOption {
	return func(settings *decodesSettings) {
		settings.processor = processor
	}
}

// WithDecodingLogger sets the logger of the decoder.
func WithDecodingLogger(logger log.LeveledLogger) DecodesOption {
	return func(settings *decodesSettings) {
		settings.logger = logger
	}
}

// NewDecodes returns a decoder using the configuration given.
func NewDecodes[T any](config Config, options ...DecodesOption) *Decodes[T] {
	settings := decodesSettings{
		processor: Identity{},
		logger:    logger,
	}
	for _, option := range options {
		option(&settings)
	}
	return &Decodes[T]{
		schedule:  config.Schedule,
		failed:    config.DecodingFailed,
		processor: settings.processor,
		logger:    settings.logger,
	}
}

// Decode charges, reads and decodes the contract input.
func (d *Decodes[T]) Decode(env Environment) (output T, err error) {
	length := env.InLen()
	weight := d.schedule.ReadFromBuffer(length)
	charged, err := env.ChargeWeight(weight)
	if err != nil {
		return output, err
	}
	d.logger.Debugf("pre-decode weight charged: len=%d, weight=%s, charged=%s",
		length, weight, charged.Amount())

	input, err := env.Read(length)
	if err != nil {
		return output, err
	}
	d.logger.Debugf("input read: input=0x%x", input)

	input = d.processor.Process(input, env)
	err = scale.Unmarshal(input, &output)
	if err != nil {
		d.logger.Errorf("decoding failed: unable to decode input 0x%x: %s", input, err)
		return output, d.failed
	}
	return output, nil
}

type converted[S, T any] struct {
	decoder Decoder[S]
	convert func(S) T
}

func (c converted[S, T]) Decode(env Environment) (output T, err error) {
	source, err := c.decoder.Decode(env)
	if err != nil {
		return output, err
	}
	return c.convert(source), nil
}

// Converted returns a decoder converting the values decoded by the
// decoder given, such as a versioned call to the current call.
func Converted[S, T any](decoder Decoder[S], convert func(S) T) Decoder[T] {
	return converted[S, T]{decoder: decoder, convert: convert}
}
