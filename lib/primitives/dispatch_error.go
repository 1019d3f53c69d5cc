// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package primitives

import (
	"encoding/hex"
	"fmt"

	"github.com/ChainSafe/chainext/pkg/scale"
)

// DispatchErrorKind is the discriminant of a DispatchError.
type DispatchErrorKind uint8

const (
	// KindOther is some error occurred.
	KindOther DispatchErrorKind = iota
	// KindCannotLookup is a failure to look up some data.
	KindCannotLookup
	// KindBadOrigin is a bad origin.
	KindBadOrigin
	// KindModule is a custom error in a module.
	KindModule
	// KindConsumerRemaining is at least one consumer is remaining so the
	// account cannot be destroyed.
	KindConsumerRemaining
	// KindNoProviders is there are no providers so the account cannot be created.
	KindNoProviders
	// KindTooManyConsumers is there are too many consumers so the account
	// cannot be created.
	KindTooManyConsumers
	// KindToken is an error to do with tokens.
	KindToken
	// KindArithmetic is an arithmetic error.
	KindArithmetic
	// KindTransactional is an error with the transactional layers.
	KindTransactional
	// KindExhausted is resources exhausted, e.g. attempt to read/write data
	// which is too large to manipulate.
	KindExhausted
	// KindCorruption is the state is corrupt; this is generally not going to fix itself.
	KindCorruption
	// KindUnavailable is some resource (e.g. a preimage) is unavailable right
	// now. This might fix itself later.
	KindUnavailable
	// KindRootNotAllowed is the root origin is not allowed.
	KindRootNotAllowed
	// KindTrie is an error with the trie.
	KindTrie
)

var dispatchErrorKindStrings = [...]string{
	KindOther:             "Other",
	KindCannotLookup:      "CannotLookup",
	KindBadOrigin:         "BadOrigin",
	KindModule:            "Module",
	KindConsumerRemaining: "ConsumerRemaining",
	KindNoProviders:       "NoProviders",
	KindTooManyConsumers:  "TooManyConsumers",
	KindToken:             "Token",
	KindArithmetic:        "Arithmetic",
	KindTransactional:     "Transactional",
	KindExhausted:         "Exhausted",
	KindCorruption:        "Corruption",
	KindUnavailable:       "Unavailable",
	KindRootNotAllowed:    "RootNotAllowed",
	KindTrie:              "Trie",
}

func (k DispatchErrorKind) String() string {
	if int(k) < len(dispatchErrorKindStrings) {
		return dispatchErrorKindStrings[k]
	}
	return fmt.Sprintf("DispatchErrorKind(%d)", uint8(k))
}

// ModuleError is a custom error raised by a pallet.
type ModuleError struct {
	// Index is the index of the pallet in the runtime.
	Index uint8
	// Error is the pallet local error encoding. Its first byte is the
	// index of the error variant, the remaining bytes its payload.
	Error [4]byte
}

func (m ModuleError) String() string {
	return fmt.Sprintf("index: %d, error: 0x%s", m.Index, hex.EncodeToString(m.Error[:]))
}

// TokenError is a token related error.
type TokenError uint8

const (
	// FundsUnavailable is funds are unavailable.
	FundsUnavailable TokenError = iota
	// OnlyProvider is some part of the balance gives the only provider
	// reference to the account and thus cannot be (re)moved.
	OnlyProvider
	// BelowMinimum is the account cannot exist with the funds that would be given.
	BelowMinimum
	// CannotCreate is the account cannot be created.
	CannotCreate
	// UnknownAsset is the asset in question is unknown.
	UnknownAsset
	// Frozen is the funds in question are frozen.
	Frozen
	// Unsupported is the operation is not supported by the asset.
	Unsupported
	// CannotCreateHold is the account cannot be created for recording amount on hold.
	CannotCreateHold
	// NotExpendable is the withdrawal would cause unwanted loss of account.
	NotExpendable
	// Blocked is the account cannot receive the assets.
	Blocked
)

var tokenErrorStrings = [...]string{
	"FundsUnavailable", "OnlyProvider", "BelowMinimum", "CannotCreate", "UnknownAsset",
	"Frozen", "Unsupported", "CannotCreateHold", "NotExpendable", "Blocked",
}

func (e TokenError) String() string {
	if int(e) < len(tokenErrorStrings) {
		return tokenErrorStrings[e]
	}
	return fmt.Sprintf("TokenError(%d)", uint8(e))
}

// ArithmeticError is an arithmetic error.
type ArithmeticError uint8

const (
	// Underflow is an underflow.
	Underflow ArithmeticError = iota
	// Overflow is an overflow.
	Overflow
	// DivisionByZero is a division by zero.
	DivisionByZero
)

var arithmeticErrorStrings = [...]string{"Underflow", "Overflow", "DivisionByZero"}

func (e ArithmeticError) String() string {
	if int(e) < len(arithmeticErrorStrings) {
		return arithmeticErrorStrings[e]
	}
	return fmt.Sprintf("ArithmeticError(%d)", uint8(e))
}

// TransactionalError is an error of the transactional storage layers.
type TransactionalError uint8

const (
	// LimitReached is too many transactional layers have been spawned.
	LimitReached TransactionalError = iota
	// NoLayer is a transactional layer was expected, but does not exist.
	NoLayer
)

var transactionalErrorStrings = [...]string{"LimitReached", "NoLayer"}

func (e TransactionalError) String() string {
	if int(e) < len(transactionalErrorStrings) {
		return transactionalErrorStrings[e]
	}
	return fmt.Sprintf("TransactionalError(%d)", uint8(e))
}

// TrieError is an error of the state trie. Its variants are not
// interpreted by this repository.
type TrieError uint8

// Number of variants of each nested error, used to validate decoded values.
const (
	tokenErrorCount         = 10
	arithmeticErrorCount    = 3
	transactionalErrorCount = 2
	trieErrorCount          = 14
)

// DispatchError is the reason a runtime dispatch failed.
// It is a comparable value type, so errors.Is and == can be used on it.
// Only the field matching its kind is meaningful.
type DispatchError struct {
	kind DispatchErrorKind
	// message is the description of an Other error. It is not encoded.
	message       string
	module        ModuleError
	token         TokenError
	arithmetic    ArithmeticError
	transactional TransactionalError
	trie          TrieError
}

var (
	// CannotLookup is a failure to look up some data.
	CannotLookup = DispatchError{kind: KindCannotLookup}
	// BadOrigin is a bad origin.
	BadOrigin = DispatchError{kind: KindBadOrigin}
	// ConsumerRemaining is at least one consumer is remaining.
	ConsumerRemaining = DispatchError{kind: KindConsumerRemaining}
	// NoProviders is there are no providers.
	NoProviders = DispatchError{kind: KindNoProviders}
	// TooManyConsumers is there are too many consumers.
	TooManyConsumers = DispatchError{kind: KindTooManyConsumers}
	// Exhausted is resources exhausted.
	Exhausted = DispatchError{kind: KindExhausted}
	// Corruption is the state is corrupt.
	Corruption = DispatchError{kind: KindCorruption}
	// Unavailable is some resource is unavailable right now.
	Unavailable = DispatchError{kind: KindUnavailable}
	// RootNotAllowed is the root origin is not allowed.
	RootNotAllowed = DispatchError{kind: KindRootNotAllowed}
)

// Other returns an Other dispatch error with the message given.
func Other(message string) DispatchError {
	return DispatchError{kind: KindOther, message: message}
}

// Module returns a module dispatch error.
func Module(index uint8, err [4]byte) DispatchError {
	return DispatchError{kind: KindModule, module: ModuleError{Index: index, Error: err}}
}

// ModuleVariant returns a module dispatch error for a pallet error variant
// without payload.
func ModuleVariant(index, variant uint8) DispatchError {
	return Module(index, [4]byte{variant})
}

// Token returns a token dispatch error.
func Token(err TokenError) DispatchError {
	return DispatchError{kind: KindToken, token: err}
}

// Arithmetic returns an arithmetic dispatch error.
func Arithmetic(err ArithmeticError) DispatchError {
	return DispatchError{kind: KindArithmetic, arithmetic: err}
}

// Transactional returns a transactional dispatch error.
func Transactional(err TransactionalError) DispatchError {
	return DispatchError{kind: KindTransactional, transactional: err}
}

// Trie returns a trie dispatch error.
func Trie(err TrieError) DispatchError {
	return DispatchError{kind: KindTrie, trie: err}
}

// Kind returns the discriminant of the error.
func (e DispatchError) Kind() DispatchErrorKind { return e.kind }

// Message returns the description of an Other error.
func (e DispatchError) Message() string { return e.message }

// ModuleError returns the module error and true if the error is of the
// module kind.
func (e DispatchError) ModuleError() (ModuleError, bool) {
	return e.module, e.kind == KindModule
}

// TokenError returns the token error and true if the error is of the
// token kind.
func (e DispatchError) TokenError() (TokenError, bool) {
	return e.token, e.kind == KindToken
}

// ArithmeticError returns the arithmetic error and true if the error is of
// the arithmetic kind.
func (e DispatchError) ArithmeticError() (ArithmeticError, bool) {
	return e.arithmetic, e.kind == KindArithmetic
}

// TransactionalError returns the transactional error and true if the error
// is of the transactional kind.
func (e DispatchError) TransactionalError() (TransactionalError, bool) {
	return e.transactional, e.kind == KindTransactional
}

func (e DispatchError) Error() string {
	switch e.kind {
	case KindOther:
		if e.message == "" {
			return "other"
		}
		return "other: " + e.message
	case KindModule:
		return "module error: " + e.module.String()
	case KindToken:
		return "token error: " + e.token.String()
	case KindArithmetic:
		return "arithmetic error: " + e.arithmetic.String()
	case KindTransactional:
		return "transactional error: " + e.transactional.String()
	case KindTrie:
		return fmt.Sprintf("trie error: %d", e.trie)
	default:
		return e.kind.String()
	}
}

// Encode writes the SCALE encoding of the error.
func (e DispatchError) Encode(encoder scale.Encoder) error {
	err := encoder.PushByte(byte(e.kind))
	if err != nil {
		return err
	}

	switch e.kind {
	case KindModule:
		err = encoder.PushByte(e.module.Index)
		if err != nil {
			return err
		}
		return encoder.Write(e.module.Error[:])
	case KindToken:
		return encoder.PushByte(byte(e.token))
	case KindArithmetic:
		return encoder.PushByte(byte(e.arithmetic))
	case KindTransactional:
		return encoder.PushByte(byte(e.transactional))
	case KindTrie:
		return encoder.PushByte(byte(e.trie))
	}
	return nil
}

// Bytes returns the SCALE encoding of the error.
func (e DispatchError) Bytes() []byte {
	return scale.MustMarshal(e)
}

func decodeNested(decoder scale.Decoder, count uint8) (uint8, error) {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return 0, err
	}
	if b >= count {
		return 0, fmt.Errorf("%w: %d", scale.ErrUnknownVariant, b)
	}
	return b, nil
}

// Decode reads the SCALE encoding of an error.
func (e *DispatchError) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}

	decoded := DispatchError{kind: DispatchErrorKind(b)}
	switch decoded.kind {
	case KindOther, KindCannotLookup, KindBadOrigin, KindConsumerRemaining, KindNoProviders,
		KindTooManyConsumers, KindExhausted, KindCorruption, KindUnavailable, KindRootNotAllowed:
	case KindModule:
		decoded.module.Index, err = decoder.ReadOneByte()
		if err != nil {
			return err
		}
		err = decoder.Read(decoded.module.Error[:])
		if err != nil {
			return err
		}
	case KindToken:
		var nested uint8
		nested, err = decodeNested(decoder, tokenErrorCount)
		decoded.token = TokenError(nested)
	case KindArithmetic:
		var nested uint8
		nested, err = decodeNested(decoder, arithmeticErrorCount)
		decoded.arithmetic = ArithmeticError(nested)
	case KindTransactional:
		var nested uint8
		nested, err = decodeNested(decoder, transactionalErrorCount)
		decoded.transactional = TransactionalError(nested)
	case KindTrie:
		var nested uint8
		nested, err = decodeNested(decoder, trieErrorCount)
		decoded.trie = TrieError(nested)
	default:
		return fmt.Errorf("%w: dispatch error %d", scale.ErrUnknownVariant, b)
	}
	if err != nil {
		return err
	}

	*e = decoded
	return nil
}
