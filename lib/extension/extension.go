// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package extension implements the chain extension dispatch engine: it
// routes a contract call to a function by its identifier, decodes the
// contract input, filters and meters the work and converts runtime
// errors to status codes.
package extension

import (
	"time"

	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/primitives"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "extension"))

// Config holds the runtime specific values shared by the functions.
type Config struct {
	Schedule Schedule
	// DecodingFailed is returned for undecodable inputs and unmatched
	// identifiers.
	DecodingFailed primitives.DispatchError
	// CallFiltered is returned for reads rejected by their filter.
	CallFiltered primitives.DispatchError
}

// Observer observes the outcome of extension calls.
type Observer interface {
	ObserveCall(id Identifier, status RetVal, err error, elapsed time.Duration)
}

// Extension is the chain extension entry point.
type Extension struct {
	schedule  Schedule
	functions Function
	observer  Observer
	logger    log.LeveledLogger
}

// Option configures an Extension.
type Option func(e *Extension)

// WithObserver sets the observer of the extension calls.
func WithObserver(observer Observer) Option {
	return func(e *Extension) {
		e.observer = observer
	}
}

// WithLogger sets the logger of the extension.
func WithLogger(logger log.LeveledLogger) Option {
	return func(e *Extension) {
		e.logger = logger
	}
}

// New returns an extension executing the function given, usually a
// Router.
func New(schedule Schedule, functions Function, options ...Option) *Extension {
	e := &Extension{
		schedule:  schedule,
		functions: functions,
		logger:    logger,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Call handles a contract call. It charges the call overhead for the
// input length before executing the matching function. A returned error
// aborts the contract call, otherwise the status is returned to it.
func (e *Extension) Call(env Environment) (status RetVal, err error) {
	start := time.Now()
	id := IdentifierOf(env)
	defer func() {
		if e.observer != nil {
			e.observer.ObserveCall(id, status, err, time.Since(start))
		}
	}()

	inLen := env.InLen()
	e.logger.Debugf("extension called: id=%s, in_len=%d", id, inLen)

	_, err = env.ChargeWeight(e.schedule.Overhead(inLen))
	if err != nil {
		return 0, err
	}

	status, err = e.functions.Execute(env)
	if err != nil {
		e.logger.Debugf("extension call failed: id=%s, error=%s", id, err)
		return 0, err
	}
	e.logger.Debugf("extension call succeeded: id=%s, status=%d", id, status)
	return status, nil
}
