// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_New(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		options        []Option
		expectedLogger *Logger
	}{
		"defaults": {
			expectedLogger: &Logger{
				settings: settings{
					writer: os.Stdout,
					level:  levelPtr(Info),
					format: formatPtr(FormatConsole),
					caller: newCallerSettings(false, false, false),
				},
				mutex: new(sync.Mutex),
			},
		},
		"targets": {
			options: []Option{
				AddTarget("extension"),
				SetTargetLevel("extension", Debug),
				SetTargetLevel("router", Warn),
				SetTargetLevel("extension", Trace),
			},
			expectedLogger: &Logger{
				settings: settings{
					writer: os.Stdout,
					level:  levelPtr(Info),
					format: formatPtr(FormatConsole),
					caller: newCallerSettings(false, false, false),
					context: []contextKeyValues{
						{key: "target", values: []string{"extension"}},
					},
					targetLevels: map[string]Level{
						"extension": Trace,
						"router":    Warn,
					},
				},
				mutex: new(sync.Mutex),
			},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			logger := New(testCase.options...)

			assert.Equal(t, testCase.expectedLogger, logger)
		})
	}
}

func Test_Logger_New(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		parentOptions []Option
		childOptions  []Option
		lines         []string
	}{
		"inherits_parent": {
			parentOptions: []Option{SetLevel(Debug), AddContext("pkg", "devnet")},
			lines: []string{
				"DEBUG    debug\tpkg=devnet",
				"WARN     warn\tpkg=devnet",
			},
		},
		"overrides_level": {
			parentOptions: []Option{SetLevel(Debug)},
			childOptions:  []Option{SetLevel(Warn)},
			lines:         []string{"WARN     warn"},
		},
		"nests_target": {
			parentOptions: []Option{AddTarget("extension")},
			childOptions:  []Option{AddTarget("dispatch")},
			lines:         []string{"WARN     warn\ttarget=extension,dispatch"},
		},
		"inherits_target_level": {
			parentOptions: []Option{
				AddTarget("extension"),
				SetTargetLevel("extension::read-state", Debug),
			},
			childOptions: []Option{AddTarget("read-state")},
			lines: []string{
				"DEBUG    debug\ttarget=extension,read-state",
				"WARN     warn\ttarget=extension,read-state",
			},
		},
		"child_target_level_wins": {
			parentOptions: []Option{SetTargetLevel("router", Debug)},
			childOptions: []Option{
				AddTarget("router"),
				SetTargetLevel("router", Error),
			},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buffer := bytes.NewBuffer(nil)
			parentOptions := append([]Option{SetWriter(buffer)}, testCase.parentOptions...)
			parent := New(parentOptions...)

			child := parent.New(testCase.childOptions...)
			child.Debug("debug")
			child.Warn("warn")

			assert.Equal(t, testCase.lines, logLines(t, buffer))
			assert.Equal(t, []*Logger{child}, parent.childs)
		})
	}
}
