// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Settings(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		settings   Settings
		expected   Settings
		errWrapped error
	}{
		"in_memory_drops_path": {
			settings: Settings{Path: "/tmp/state", InMemory: true},
			expected: Settings{InMemory: true},
		},
		"path_cleaned": {
			settings: Settings{Path: "/tmp/state/../state/"},
			expected: Settings{Path: "/tmp/state"},
		},
		"missing_path": {
			errWrapped: errPathMissing,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			settings := testCase.settings
			settings.SetDefaults()
			assert.Equal(t, testCase.expected, settings)
			assert.ErrorIs(t, settings.Validate(), testCase.errWrapped)
		})
	}
}
