// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/lib/frame"
)

// FunctionOption configures a DispatchCall or ReadState function.
type FunctionOption func(settings *functionSettings)

type functionSettings struct {
	logger log.LeveledLogger
}

// WithFunctionLogger sets the logger of the function.
func WithFunctionLogger(logger log.LeveledLogger) FunctionOption {
	return func(settings *functionSettings) {
		settings.logger = logger
	}
}

func newFunctionSettings(target string, options []FunctionOption) functionSettings {
	settings := functionSettings{
		logger: logger.New(log.AddTarget(target)),
	}
	for _, option := range options {
		option(&settings)
	}
	return settings
}

// DispatchCall dispatches a runtime call of type C on behalf of the
// calling contract.
type DispatchCall[C frame.Dispatchable[C]] struct {
	matcher Matcher
	decoder Decoder[C]
	filter  frame.Contains[C]
	errors  ErrorConverter
	logger  log.LeveledLogger
}

// NewDispatchCall returns a function dispatching the calls decoded by
// the decoder. Calls not contained in the filter fail when dispatched.
func NewDispatchCall[C frame.Dispatchable[C]](matcher Matcher, decoder Decoder[C],
	filter frame.Contains[C], errorConverter ErrorConverter, options ...FunctionOption) *DispatchCall[C] {
	settings := newFunctionSettings("dispatch", options)
	return &DispatchCall[C]{
		matcher: matcher,
		decoder: decoder,
		filter:  filter,
		errors:  errorConverter,
		logger:  settings.logger,
	}
}

// Matches returns true if the function handles the call.
func (d *DispatchCall[C]) Matches(ids IDs) bool {
	return d.matcher.Matches(ids)
}

// Execute decodes the call, charges its declared weight and dispatches
// it with the contract account as signed origin. The charge is adjusted
// to the actual weight whether the dispatch succeeds or not.
func (d *DispatchCall[C]) Execute(env Environment) (RetVal, error) {
	call, err := d.decoder.Decode(env)
	if err != nil {
		return 0, err
	}

	info := call.GetDispatchInfo()
	charged, err := env.ChargeWeight(info.Weight)
	if err != nil {
		return 0, err
	}
	d.logger.Debugf("pre-dispatch weight charged: info=%+v, charged=%s", info, charged.Amount())

	address := env.Ext().Address()
	origin := frame.NewOrigin[C](frame.Signed(address))
	origin.AddFilter(d.filter)

	post, err := call.Dispatch(origin)
	actual := frame.ExtractActualWeight(post, info)
	env.AdjustWeight(charged, actual)
	d.logger.Debugf("weight adjusted: charged=%s, actual=%s", charged.Amount(), actual)

	if err == nil {
		d.logger.Debugf("dispatched call %v for %s", call, address)
		return 0, nil
	}

	dispatchErr := dispatchError(err)
	d.logger.Debugf("dispatch failed: %s", dispatchErr)
	return d.errors.Convert(dispatchErr, env)
}
