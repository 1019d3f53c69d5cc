// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

// Matcher decides if a function handles the current call, looking at
// the call identifier only.
type Matcher interface {
	Matches(ids IDs) bool
}

// MatcherFunc is a function implementing Matcher.
type MatcherFunc func(ids IDs) bool

// Matches returns f(ids).
func (f MatcherFunc) Matches(ids IDs) bool { return f(ids) }

// Equals matches the extension and function ids given.
type Equals struct {
	ExtID  uint16
	FuncID uint16
}

// Matches returns true if both ids are equal.
func (e Equals) Matches(ids IDs) bool {
	return ids.ExtID() == e.ExtID && ids.FuncID() == e.FuncID
}

// FunctionID matches the function id given, whatever the extension id.
type FunctionID uint16

// Matches returns true if the function id is equal.
func (f FunctionID) Matches(ids IDs) bool {
	return ids.FuncID() == uint16(f)
}

// WithFuncID matches the full identifier given.
type WithFuncID uint32

// Matches returns true if the identifier is equal.
func (w WithFuncID) Matches(ids IDs) bool {
	return IdentifierOf(ids) == Identifier(w)
}

// FirstByteOfFunctionID matches the first byte of the function id, which
// is the call category.
type FirstByteOfFunctionID uint8

// Matches returns true if the call category is equal.
func (f FirstByteOfFunctionID) Matches(ids IDs) bool {
	return IdentifierOf(ids).Category() == uint8(f)
}
