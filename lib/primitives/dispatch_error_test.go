// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package primitives

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ChainSafe/chainext/pkg/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DispatchError_Encode(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		err      DispatchError
		expected []byte
	}{
		"other_message_not_encoded": {err: Other("hello"), expected: []byte{0}},
		"cannot_lookup":             {err: CannotLookup, expected: []byte{1}},
		"bad_origin":                {err: BadOrigin, expected: []byte{2}},
		"module": {
			err:      Module(1, [4]byte{2, 3, 4, 5}),
			expected: []byte{3, 1, 2, 3, 4, 5},
		},
		"consumer_remaining": {err: ConsumerRemaining, expected: []byte{4}},
		"no_providers":       {err: NoProviders, expected: []byte{5}},
		"too_many_consumers": {err: TooManyConsumers, expected: []byte{6}},
		"token":              {err: Token(BelowMinimum), expected: []byte{7, 2}},
		"arithmetic":         {err: Arithmetic(Overflow), expected: []byte{8, 1}},
		"transactional":      {err: Transactional(NoLayer), expected: []byte{9, 1}},
		"exhausted":          {err: Exhausted, expected: []byte{10}},
		"corruption":         {err: Corruption, expected: []byte{11}},
		"unavailable":        {err: Unavailable, expected: []byte{12}},
		"root_not_allowed":   {err: RootNotAllowed, expected: []byte{13}},
		"trie":               {err: Trie(3), expected: []byte{14, 3}},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.err.Bytes())
			// deterministic
			assert.Equal(t, testCase.err.Bytes(), testCase.err.Bytes())
		})
	}
}

func Test_DispatchError_Decode(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		encoded       []byte
		expected      DispatchError
		errSentinel   error
		errorExpected bool
	}{
		"other": {
			encoded:  []byte{0},
			expected: Other(""),
		},
		"module": {
			encoded:  []byte{3, 40, 11, 0, 0, 0},
			expected: ModuleVariant(40, 11),
		},
		"token": {
			encoded:  []byte{7, 9},
			expected: Token(Blocked),
		},
		"token_out_of_range": {
			encoded:     []byte{7, 10},
			errSentinel: scale.ErrUnknownVariant,
		},
		"arithmetic_out_of_range": {
			encoded:     []byte{8, 3},
			errSentinel: scale.ErrUnknownVariant,
		},
		"unknown_kind": {
			encoded:     []byte{15},
			errSentinel: scale.ErrUnknownVariant,
		},
		"short_module": {
			encoded:       []byte{3, 1, 2},
			errorExpected: true,
		},
		"empty": {
			encoded:       []byte{},
			errorExpected: true,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var decoded DispatchError
			err := scale.Unmarshal(testCase.encoded, &decoded)

			switch {
			case testCase.errSentinel != nil:
				assert.ErrorIs(t, err, scale.ErrDecoding)
				assert.ErrorContains(t, err, testCase.errSentinel.Error())
			case testCase.errorExpected:
				assert.ErrorIs(t, err, scale.ErrDecoding)
			default:
				require.NoError(t, err)
				assert.Equal(t, testCase.expected, decoded)
			}
		})
	}
}

func Test_DispatchError_comparable(t *testing.T) {
	t.Parallel()

	var err error = fmt.Errorf("dispatching: %w", Module(0, [4]byte{5}))
	assert.ErrorIs(t, err, ModuleVariant(0, 5))
	assert.NotErrorIs(t, err, ModuleVariant(0, 6))

	var dispatchErr DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	moduleErr, ok := dispatchErr.ModuleError()
	require.True(t, ok)
	assert.Equal(t, ModuleError{Index: 0, Error: [4]byte{5}}, moduleErr)

	_, ok = dispatchErr.TokenError()
	assert.False(t, ok)
}

func Test_DispatchError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "other: UnknownCall", Other("UnknownCall").Error())
	assert.Equal(t, "BadOrigin", BadOrigin.Error())
	assert.Equal(t, "module error: index: 1, error: 0x02000000", Module(1, [4]byte{2}).Error())
	assert.Equal(t, "token error: FundsUnavailable", Token(FundsUnavailable).Error())
	assert.Equal(t, "arithmetic error: Overflow", Arithmetic(Overflow).Error())
	assert.Equal(t, "transactional error: LimitReached", Transactional(LimitReached).Error())
}
