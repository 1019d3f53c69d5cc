// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Matchers(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		matcher  Matcher
		id       Identifier
		expected bool
	}{
		"equals": {
			matcher:  Equals{ExtID: 1, FuncID: 2},
			id:       IdentifierFromParts(1, 2),
			expected: true,
		},
		"equals_other_extension": {
			matcher: Equals{ExtID: 1, FuncID: 2},
			id:      IdentifierFromParts(2, 2),
		},
		"function_id_any_extension": {
			matcher:  FunctionID(2),
			id:       IdentifierFromParts(0xffff, 2),
			expected: true,
		},
		"function_id_other_function": {
			matcher: FunctionID(2),
			id:      IdentifierFromParts(0, 3),
		},
		"with_func_id": {
			matcher:  WithFuncID(0x01960001),
			id:       NewIdentifier(1, 0, 150, 1),
			expected: true,
		},
		"with_func_id_other_index": {
			matcher: WithFuncID(0x01960001),
			id:      NewIdentifier(1, 0, 150, 2),
		},
		"first_byte": {
			matcher:  FirstByteOfFunctionID(CategoryReadState),
			id:       NewIdentifier(CategoryReadState, 7, 150, 18),
			expected: true,
		},
		"first_byte_ignores_version": {
			matcher:  FirstByteOfFunctionID(CategoryDispatch),
			id:       NewIdentifier(CategoryDispatch, 0xff, 0, 0),
			expected: true,
		},
		"first_byte_other_category": {
			matcher: FirstByteOfFunctionID(CategoryDispatch),
			id:      NewIdentifier(CategoryReadState, 0, 150, 3),
		},
		"func": {
			matcher:  MatcherFunc(func(ids IDs) bool { return ids.ExtID() > 0x0100 }),
			id:       NewIdentifier(0, 0, 150, 3),
			expected: true,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, testCase.matcher.Matches(testCase.id))
		})
	}
}
