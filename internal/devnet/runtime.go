// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package devnet assembles the development network runtime: the system,
// contracts and fungibles pallets, and the chain extension letting
// contracts dispatch fungibles calls and read fungibles state.
package devnet

import (
	"errors"

	"github.com/ChainSafe/chainext/internal/log"
	"github.com/ChainSafe/chainext/internal/pallets/contracts"
	"github.com/ChainSafe/chainext/internal/pallets/fungibles"
	"github.com/ChainSafe/chainext/internal/pallets/system"
	"github.com/ChainSafe/chainext/lib/extension"
	"github.com/ChainSafe/chainext/lib/frame"
	"github.com/ChainSafe/chainext/lib/frame/storage"
	"github.com/ChainSafe/chainext/lib/primitives"
)

// Function categories, the first byte of the function identifier.
const (
	DispatchCategory uint8 = 0
	ReadCategory     uint8 = 1
)

// ErrUnboundCall is returned when dispatching a call which was not
// decoded by, or bound to, a runtime.
var ErrUnboundCall = errors.New("call is not bound to a runtime")

var logger = log.NewFromGlobal(log.AddContext("pkg", "devnet"))

// GasObserver is implemented by observers also recording the gas
// consumed by chain extension calls.
type GasObserver interface {
	ObserveGas(consumed primitives.Weight)
}

// Runtime is the devnet runtime.
type Runtime struct {
	state     *storage.State
	System    *system.Pallet
	Contracts *contracts.Pallet
	Fungibles *fungibles.Pallet

	baseFilter  frame.Contains[RuntimeCall]
	extension   *extension.Extension
	gasObserver GasObserver
	logger      log.LeveledLogger
}

type settings struct {
	schedule   extension.Schedule
	baseFilter frame.Contains[RuntimeCall]
	callFilter frame.Contains[RuntimeCall]
	readFilter frame.Contains[RuntimeRead]
	observer   extension.Observer
	logger     *log.Logger
	logTarget  string
}

// Option configures the runtime.
type Option func(s *settings)

// WithSchedule sets the weight schedule of the chain extension.
func WithSchedule(schedule extension.Schedule) Option {
	return func(s *settings) {
		s.schedule = schedule
	}
}

// WithBaseCallFilter sets the filter applied to every call dispatched
// by a signed origin. It defaults to Everything.
func WithBaseCallFilter(filter frame.Contains[RuntimeCall]) Option {
	return func(s *settings) {
		s.baseFilter = filter
	}
}

// WithCallFilter replaces AllowedCalls as the filter of the calls
// contracts may dispatch. The base call filter still applies.
func WithCallFilter(filter frame.Contains[RuntimeCall]) Option {
	return func(s *settings) {
		s.callFilter = filter
	}
}

// WithReadFilter replaces AllowedReads as the filter of the reads
// contracts may perform.
func WithReadFilter(filter frame.Contains[RuntimeRead]) Option {
	return func(s *settings) {
		s.readFilter = filter
	}
}

// WithObserver sets the observer of the chain extension calls.
func WithObserver(observer extension.Observer) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

// WithLogger sets the logger of the runtime and its chain extension.
func WithLogger(logger *log.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLogTarget sets the log target of the chain extension messages.
// It defaults to "extension".
func WithLogTarget(target string) Option {
	return func(s *settings) {
		s.logTarget = target
	}
}

// New returns the runtime operating on the state given.
func New(state *storage.State, options ...Option) *Runtime {
	s := settings{
		schedule:   extension.DefaultSchedule(),
		baseFilter: frame.Everything[RuntimeCall]{},
		callFilter: AllowedCalls,
		readFilter: AllowedReads,
		logger:     logger,
		logTarget:  "extension",
	}
	for _, option := range options {
		option(&s)
	}

	systemPallet := system.New(state)
	r := &Runtime{
		state:      state,
		System:     systemPallet,
		Contracts:  contracts.New(state),
		Fungibles:  fungibles.New(state, systemPallet),
		baseFilter: s.baseFilter,
		logger:     s.logger,
	}

	config := extension.Config{
		Schedule:       s.schedule,
		DecodingFailed: contracts.ErrDecodingFailed,
		CallFiltered:   system.ErrCallFiltered,
	}
	extensionLogger := s.logger.New(log.AddTarget(s.logTarget))

	calls := extension.Converted[VersionedRuntimeCall, RuntimeCall](
		extension.NewDecodes[VersionedRuntimeCall](config,
			extension.WithProcessor(extension.Prepender{}),
			extension.WithDecodingLogger(extensionLogger.New(log.AddTarget("decoding")))),
		func(versioned VersionedRuntimeCall) RuntimeCall { return versioned.Call.bind(r) },
	)
	reads := extension.Converted[VersionedRuntimeRead, RuntimeRead](
		extension.NewDecodes[VersionedRuntimeRead](config,
			extension.WithProcessor(extension.Prepender{}),
			extension.WithDecodingLogger(extensionLogger.New(log.AddTarget("decoding")))),
		func(versioned VersionedRuntimeRead) RuntimeRead { return versioned.Read.bind(r) },
	)

	functions := extension.NewRouter(contracts.ErrDecodingFailed,
		extension.NewDispatchCall[RuntimeCall](
			extension.FirstByteOfFunctionID(DispatchCategory),
			calls,
			frame.And(s.baseFilter, s.callFilter),
			extension.VersionedErrorConverter{ToStatus: ToStatus},
			extension.WithFunctionLogger(extensionLogger.New(log.AddTarget("dispatch"))),
		),
		extension.NewReadState[RuntimeRead, RuntimeResult](config,
			extension.FirstByteOfFunctionID(ReadCategory),
			reads,
			s.readFilter,
			extension.VersionedResultConverter[RuntimeResult]{ToVersion: ToVersion},
			extension.WithFunctionLogger(extensionLogger.New(log.AddTarget("read-state"))),
		),
	)

	extensionOptions := []extension.Option{extension.WithLogger(extensionLogger)}
	if s.observer != nil {
		extensionOptions = append(extensionOptions, extension.WithObserver(s.observer))
		r.gasObserver, _ = s.observer.(GasObserver)
	}
	r.extension = extension.New(s.schedule, functions, extensionOptions...)
	return r
}

// State returns the state of the runtime.
func (r *Runtime) State() *storage.State { return r.state }

// Extension returns the chain extension of the runtime.
func (r *Runtime) Extension() *extension.Extension { return r.extension }

// Call runs a chain extension call made by a contract.
func (r *Runtime) Call(request contracts.CallRequest) contracts.CallResult {
	result := r.Contracts.CallChainExtension(r.extension, request)
	if r.gasObserver != nil {
		r.gasObserver.ObserveGas(result.GasConsumed)
	}
	r.logger.Debugf("chain extension call 0x%08x by %s: %s", request.ID, request.Contract, result)
	return result
}

// Dispatch dispatches a call with the raw origin given, outside of the
// chain extension. Only the base call filter applies.
func (r *Runtime) Dispatch(call RuntimeCall, raw frame.RawOrigin) (frame.PostDispatchInfo, error) {
	origin := frame.NewOrigin[RuntimeCall](raw)
	origin.AddFilter(r.baseFilter)
	return call.bind(r).Dispatch(origin)
}

// Commit writes the state changes to the batch given.
func (r *Runtime) Commit(batch storage.Batch) error {
	return r.state.Commit(batch)
}
