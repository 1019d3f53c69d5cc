// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"testing"

	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Extension_Call(t *testing.T) {
	t.Parallel()

	schedule := testConfig.Schedule
	remark := testCall{kind: remarkCall, remark: []byte("hello")}
	encodedRemark := encodeCall(remark)

	testCases := map[string]struct {
		id      Identifier
		input   []byte
		err     error
		charged []primitives.Weight
	}{
		"dispatch": {
			id:    Identifier(dispatchEverything),
			input: encodedRemark,
			charged: []primitives.Weight{
				schedule.Overhead(7),
				schedule.ReadFromBuffer(7),
				remark.GetDispatchInfo().Weight,
			},
		},
		"dispatch_invalid_input": {
			id:      Identifier(dispatchEverything),
			input:   []byte{0, 99},
			err:     errTestDecodingFailed,
			charged: []primitives.Weight{schedule.Overhead(2), schedule.ReadFromBuffer(2)},
		},
		"read": {
			id:    Identifier(readEverything),
			input: []byte{byte(ping)},
			charged: []primitives.Weight{
				schedule.Overhead(1),
				schedule.ReadFromBuffer(1),
				primitives.NewWeight(1_000, 1),
				schedule.WriteToContract(4),
			},
		},
		"unknown_function": {
			id:      invalidFuncID,
			input:   []byte{1, 2, 3},
			err:     errTestDecodingFailed,
			charged: []primitives.Weight{schedule.Overhead(3)},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnvironment(testCase.id, testCase.input)
			extension := New(schedule, newTestFunctions())

			status, err := extension.Call(env)

			assert.Equal(t, RetVal(0), status)
			if testCase.err != nil {
				assert.ErrorIs(t, err, testCase.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, testCase.charged, env.charged)
		})
	}
}

func Test_Extension_Call_overhead_out_of_gas(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	env := NewMockEnvironment(ctrl)
	id := Identifier(dispatchEverything)
	env.EXPECT().FuncID().Return(id.FuncID())
	env.EXPECT().ExtID().Return(id.ExtID())
	env.EXPECT().InLen().Return(uint32(10))
	env.EXPECT().ChargeWeight(DefaultSchedule().Overhead(10)).Return(ChargedAmount{}, errOutOfGas)

	observer := NewMockObserver(ctrl)
	observer.EXPECT().ObserveCall(id, RetVal(0), errOutOfGas, gomock.Any())

	extension := New(DefaultSchedule(), newTestFunctions(), WithObserver(observer))
	_, err := extension.Call(env)

	assert.ErrorIs(t, err, errOutOfGas)
}

func Test_Extension_Call_observed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	observer := NewMockObserver(ctrl)
	observer.EXPECT().ObserveCall(Identifier(noopFuncID), RetVal(0), nil, gomock.Any())

	extension := New(DefaultSchedule(), newTestFunctions(), WithObserver(observer))
	env := newTestEnvironment(noopFuncID, nil)
	status, err := extension.Call(env)

	require.NoError(t, err)
	assert.Equal(t, RetVal(0), status)
	assert.Equal(t, []primitives.Weight{DefaultSchedule().Overhead(0)}, env.charged)
}
