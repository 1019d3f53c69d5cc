// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"fmt"
	"math"

	"github.com/ChainSafe/chainext/lib/frame"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/ChainSafe/chainext/pkg/scale"
)

var (
	errTestDecodingFailed = primitives.ModuleVariant(40, 11)
	errTestCallFiltered   = primitives.ModuleVariant(0, 5)
	errOutOfGas           = primitives.ModuleVariant(40, 2)
	errBufferTooSmall     = primitives.ModuleVariant(40, 3)

	testConfig = Config{
		Schedule:       DefaultSchedule(),
		DecodingFailed: errTestDecodingFailed,
		CallFiltered:   errTestCallFiltered,
	}

	testAddress = primitives.AccountIDFromUint64(100)
)

type testExt struct {
	address primitives.AccountID
}

func (e testExt) Address() primitives.AccountID { return e.address }

// testEnvironment records every weight charged. Adjusting a charge
// replaces the last recorded charge equal to it.
type testEnvironment struct {
	id        Identifier
	buffer    []byte
	charged   []primitives.Weight
	limit     *primitives.Weight
	outputCap *int
}

func newTestEnvironment(id Identifier, input []byte) *testEnvironment {
	return &testEnvironment{id: id, buffer: input}
}

func (e *testEnvironment) FuncID() uint16 { return e.id.FuncID() }
func (e *testEnvironment) ExtID() uint16  { return e.id.ExtID() }

func (e *testEnvironment) ChargeWeight(amount primitives.Weight) (ChargedAmount, error) {
	if e.limit != nil && e.total().Add(amount).AnyGt(*e.limit) {
		return ChargedAmount{}, errOutOfGas
	}
	e.charged = append(e.charged, amount)
	return NewChargedAmount(amount), nil
}

func (e *testEnvironment) AdjustWeight(charged ChargedAmount, actual primitives.Weight) {
	for i := len(e.charged) - 1; i >= 0; i-- {
		if e.charged[i] == charged.Amount() {
			e.charged[i] = actual
			return
		}
	}
	panic(fmt.Sprintf("no charge of %s to adjust", charged.Amount()))
}

func (e *testEnvironment) InLen() uint32 { return uint32(len(e.buffer)) }

func (e *testEnvironment) Read(maxLen uint32) ([]byte, error) {
	n := min(int(maxLen), len(e.buffer))
	return append([]byte(nil), e.buffer[:n]...), nil
}

func (e *testEnvironment) Write(buffer []byte, _ bool, weightPerByte *primitives.Weight) error {
	if e.outputCap != nil && len(buffer) > *e.outputCap {
		return errBufferTooSmall
	}
	if weightPerByte != nil {
		_, err := e.ChargeWeight(weightPerByte.Mul(uint64(len(buffer))))
		if err != nil {
			return err
		}
	}
	e.buffer = append([]byte(nil), buffer...)
	return nil
}

func (e *testEnvironment) Ext() Ext { return testExt{address: testAddress} }

func (e *testEnvironment) total() (total primitives.Weight) {
	for _, charged := range e.charged {
		total = total.Add(charged)
	}
	return total
}

type testCallKind uint8

const (
	remarkCall testCallKind = iota
	failingCall
	refundingCall
)

// testCall is a minimal dispatchable runtime call.
type testCall struct {
	kind   testCallKind
	remark []byte
}

var errTestDispatch = primitives.Arithmetic(primitives.Overflow)

func (c testCall) Encode(encoder scale.Encoder) error {
	if c.kind == remarkCall {
		return scale.EncodeVariant(encoder, uint8(c.kind), c.remark)
	}
	return scale.EncodeVariant(encoder, uint8(c.kind))
}

func (c *testCall) Decode(decoder scale.Decoder) (err error) {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	decoded := testCall{kind: testCallKind(b)}
	switch decoded.kind {
	case remarkCall:
		decoded.remark, err = scale.DecodeBytes(decoder)
		if err != nil {
			return err
		}
	case failingCall, refundingCall:
	default:
		return fmt.Errorf("%w: call %d", scale.ErrUnknownVariant, b)
	}
	*c = decoded
	return nil
}

func (c testCall) GetDispatchInfo() frame.DispatchInfo {
	switch c.kind {
	case remarkCall:
		return frame.DispatchInfo{Weight: primitives.NewWeight(1_000+uint64(len(c.remark)), 10)}
	case failingCall:
		return frame.DispatchInfo{Weight: primitives.NewWeight(2_000, 0)}
	default:
		return frame.DispatchInfo{Weight: primitives.NewWeight(5_000, 100)}
	}
}

func (c testCall) Dispatch(origin *frame.Origin[testCall]) (frame.PostDispatchInfo, error) {
	if !origin.Filter(c) {
		return frame.PostDispatchInfo{}, errTestCallFiltered
	}
	_, err := origin.Raw().EnsureSigned()
	if err != nil {
		return frame.PostDispatchInfo{}, err
	}
	switch c.kind {
	case failingCall:
		return frame.WithActualWeight(primitives.NewWeight(500, 0)), errTestDispatch
	case refundingCall:
		return frame.WithActualWeight(primitives.NewWeight(1_000, 10)), nil
	}
	return frame.PostDispatchInfo{}, nil
}

// testRead is a read of runtime state. Ping is its only variant.
type testRead uint8

const ping testRead = 1

func (r *testRead) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	if testRead(b) != ping {
		return fmt.Errorf("%w: read %d", scale.ErrUnknownVariant, b)
	}
	*r = ping
	return nil
}

func (testRead) Weight() primitives.Weight { return primitives.NewWeight(1_000, 1) }

func (testRead) Read() testResult { return testResult{pong: "pop"} }

// testResult encodes as its inner string.
type testResult struct {
	pong string
}

func (r testResult) Encode(encoder scale.Encoder) error {
	return scale.EncodeBytes(encoder, []byte(r.pong))
}

var removeFirstByte = ProcessorFunc(func(input []byte, _ IDs) []byte {
	if len(input) == 0 {
		return input
	}
	return input[1:]
})

type noop struct {
	Matcher
}

func (noop) Execute(Environment) (RetVal, error) { return 0, nil }

const (
	dispatchEverything FunctionID = iota + 1
	readEverything
	dispatchNothing
	readNothing
	dispatchEverythingSkipFirst
	readEverythingSkipFirst
	dispatchNothingSkipFirst
	readNothingSkipFirst
)

const (
	invalidFuncID = 0
	noopFuncID    = math.MaxUint32
)

func newDispatch(matcher Matcher, filter frame.Contains[testCall], processor Processor) Function {
	return NewDispatchCall[testCall](matcher,
		NewDecodes[testCall](testConfig, WithProcessor(processor)), filter, PassThrough{})
}

func newRead(matcher Matcher, filter frame.Contains[testRead], processor Processor) Function {
	return NewReadState[testRead, testResult](testConfig, matcher,
		NewDecodes[testRead](testConfig, WithProcessor(processor)), filter, DefaultConverter[testResult]{})
}

// newTestFunctions returns the functions of the test runtime.
func newTestFunctions() *Router {
	everythingCalls, nothingCalls := frame.Everything[testCall]{}, frame.Nothing[testCall]{}
	everythingReads, nothingReads := frame.Everything[testRead]{}, frame.Nothing[testRead]{}
	return NewRouter(errTestDecodingFailed,
		newDispatch(dispatchEverything, everythingCalls, Identity{}),
		newRead(readEverything, everythingReads, Identity{}),
		newDispatch(dispatchNothing, nothingCalls, Identity{}),
		newRead(readNothing, nothingReads, Identity{}),
		newDispatch(dispatchEverythingSkipFirst, everythingCalls, removeFirstByte),
		newRead(readEverythingSkipFirst, everythingReads, removeFirstByte),
		newDispatch(dispatchNothingSkipFirst, nothingCalls, removeFirstByte),
		newRead(readNothingSkipFirst, nothingReads, removeFirstByte),
		noop{Matcher: WithFuncID(noopFuncID)},
	)
}

func encodeCall(call testCall) []byte {
	return scale.MustMarshal(call)
}
