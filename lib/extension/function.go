// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/primitives"
)

// RetVal is the status code returned to the contract, 0 being success.
type RetVal uint32

// Function is a function of the extension.
type Function interface {
	Matcher
	// Execute executes the function. An error aborts the contract call.
	Execute(env Environment) (RetVal, error)
}

// Router executes the first of its functions matching the call.
type Router struct {
	functions      []Function
	decodingFailed primitives.DispatchError
	logger         log.LeveledLogger
}

// NewRouter returns a router over the functions given, tried in order.
// Calls matched by none of them fail with the decoding failed error,
// so an unknown function cannot be told apart from a malformed input.
func NewRouter(decodingFailed primitives.DispatchError, functions ...Function) *Router {
	return &Router{
		functions:      functions,
		decodingFailed: decodingFailed,
		logger:         logger.New(log.AddTarget("router")),
	}
}

// Matches returns true if any of the functions matches the call.
func (r *Router) Matches(ids IDs) bool {
	for _, function := range r.functions {
		if function.Matches(ids) {
			return true
		}
	}
	return false
}

// Execute executes the first matching function.
func (r *Router) Execute(env Environment) (RetVal, error) {
	for _, function := range r.functions {
		if function.Matches(env) {
			return function.Execute(env)
		}
	}
	r.logger.Debugf("no function matching identifier %s", IdentifierOf(env))
	return 0, r.decodingFailed
}
