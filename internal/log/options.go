// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
)

// Option modifies the settings of a logger.
type Option func(s *settings)

// SetLevel sets the logger level, Info by default.
func SetLevel(level Level) Option {
	return func(s *settings) { s.level = &level }
}

// SetFormat sets the logger format, FormatConsole by default.
func SetFormat(format Format) Option {
	return func(s *settings) { s.format = &format }
}

// SetWriter sets the logger writer, os.Stdout by default.
func SetWriter(writer io.Writer) Option {
	return func(s *settings) { s.writer = writer }
}

// SetCallerFile logs the file name of the caller when enabled.
func SetCallerFile(enabled bool) Option {
	return func(s *settings) { s.caller.file = &enabled }
}

// SetCallerLine logs the line number of the caller when enabled.
func SetCallerLine(enabled bool) Option {
	return func(s *settings) { s.caller.line = &enabled }
}

// SetCallerFunc logs the function name of the caller when enabled.
func SetCallerFunc(enabled bool) Option {
	return func(s *settings) { s.caller.funC = &enabled }
}

// AddContext appends a key value pair to the logger context. The value
// of a key already present is appended to the values of that key.
func AddContext(key, value string) Option {
	return func(s *settings) {
		for i, kv := range s.context {
			if kv.key != key {
				continue
			}
			s.context[i].values = append(kv.values, value)
			return
		}
		s.context = append(s.context, contextKeyValues{
			key:    key,
			values: []string{value},
		})
	}
}

// AddTarget nests the target given in the logger target, to categorise
// messages of a component within a package.
func AddTarget(target string) Option {
	return AddContext(targetKey, target)
}

// SetTargetLevel sets the level of the messages logged with the target
// given, or any target nested in it, overriding the logger level.
func SetTargetLevel(target string, level Level) Option {
	return func(s *settings) {
		levels := make(map[string]Level, len(s.targetLevels)+1)
		for t, l := range s.targetLevels {
			levels[t] = l
		}
		levels[target] = level
		s.targetLevels = levels
	}
}
