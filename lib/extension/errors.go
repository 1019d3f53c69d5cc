// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"errors"

	"github.com/ChainSafe/chainext/lib/primitives"
)

// ErrorConverter converts a dispatch error into the outcome of the
// contract call: either a status code or an error aborting the call.
type ErrorConverter interface {
	Convert(err primitives.DispatchError, env Environment) (RetVal, error)
}

// PassThrough returns dispatch errors unchanged, aborting the call.
type PassThrough struct{}

// Convert returns the error given.
func (PassThrough) Convert(err primitives.DispatchError, _ Environment) (RetVal, error) {
	return 0, err
}

// StatusFunc returns the status code of an error for the protocol
// version given. It returns an error if the version is not supported.
type StatusFunc func(err primitives.DispatchError, version uint8) (uint32, error)

// VersionedErrorConverter converts dispatch errors into the status code
// understood by the protocol version of the call identifier.
type VersionedErrorConverter struct {
	ToStatus StatusFunc
}

// Convert returns the status code of the error for the version byte of
// the call identifier.
func (v VersionedErrorConverter) Convert(err primitives.DispatchError, env Environment) (RetVal, error) {
	version := IdentifierOf(env).Version()
	status, convertErr := v.ToStatus(err, version)
	if convertErr != nil {
		logger.Errorf("converting error %s for version %d: %s", err, version, convertErr)
		return 0, convertErr
	}
	return RetVal(status), nil
}

// dispatchError returns the dispatch error carried by err, or an Other
// dispatch error with its message.
func dispatchError(err error) primitives.DispatchError {
	var dispatchErr primitives.DispatchError
	if errors.As(err, &dispatchErr) {
		return dispatchErr
	}
	return primitives.Other(err.Error())
}
