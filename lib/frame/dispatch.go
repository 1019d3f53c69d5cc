// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package frame contains the runtime dispatch primitives: origins with
// call filters and dispatch information.
package frame

import (
	"github.com/ChainSafe/chainext/lib/primitives"
)

// DispatchClass is the class of a dispatchable.
type DispatchClass uint8

const (
	// Normal is a normal dispatch.
	Normal DispatchClass = iota
	// Operational is an operational dispatch.
	Operational
	// Mandatory is a mandatory dispatch.
	Mandatory
)

// Pays indicates if a dispatch pays fees.
type Pays uint8

const (
	// PaysYes means the dispatch pays fees.
	PaysYes Pays = iota
	// PaysNo means the dispatch does not pay fees.
	PaysNo
)

// DispatchInfo is the information known before dispatching a call.
type DispatchInfo struct {
	// Weight is the worst case weight of the call.
	Weight  primitives.Weight
	Class   DispatchClass
	PaysFee Pays
}

// PostDispatchInfo is the information known after a call dispatched.
type PostDispatchInfo struct {
	// ActualWeight is the weight the call actually consumed, or nil if
	// it consumed its whole declared weight.
	ActualWeight *primitives.Weight
	PaysFee      Pays
}

// WithActualWeight returns post dispatch information with the actual
// weight given.
func WithActualWeight(weight primitives.Weight) PostDispatchInfo {
	return PostDispatchInfo{ActualWeight: &weight}
}

// CalcActualWeight returns the actual weight consumed, capped by the
// declared weight of the dispatch information given.
func (p PostDispatchInfo) CalcActualWeight(info DispatchInfo) primitives.Weight {
	if p.ActualWeight == nil {
		return info.Weight
	}
	return p.ActualWeight.Min(info.Weight)
}

// ExtractActualWeight returns the actual weight of a dispatch from its
// post dispatch information, which is available for both successful and
// failed dispatches.
func ExtractActualWeight(post PostDispatchInfo, info DispatchInfo) primitives.Weight {
	return post.CalcActualWeight(info)
}

// GetDispatchInfo is implemented by calls declaring their dispatch
// information.
type GetDispatchInfo interface {
	GetDispatchInfo() DispatchInfo
}

// Dispatchable is a call of type C which can be dispatched with an
// origin filtering calls of type C. The post dispatch information is
// returned whether the dispatch succeeded or not.
type Dispatchable[C any] interface {
	GetDispatchInfo
	Dispatch(origin *Origin[C]) (PostDispatchInfo, error)
}
