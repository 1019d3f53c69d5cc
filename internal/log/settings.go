// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

// Format is the output format of the logger.
type Format uint8

const (
	// FormatConsole writes plain text lines.
	FormatConsole Format = iota
	// FormatColoured writes text lines with a coloured level.
	FormatColoured
)

type contextKeyValues struct {
	key    string
	values []string
}

type settings struct {
	writer       io.Writer
	level        *Level
	format       *Format
	caller       callerSettings
	context      []contextKeyValues
	targetLevels map[string]Level
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

// mergeWith sets values of the receiving settings from the other settings
// given for any field unset in the receiving settings. Context key values
// of the other settings are placed before the receiving ones.
func (s *settings) mergeWith(other settings) {
	if s.writer == nil {
		s.writer = other.writer
	}

	if s.level == nil && other.level != nil {
		value := *other.level
		s.level = &value
	}

	if s.format == nil && other.format != nil {
		value := *other.format
		s.format = &value
	}

	s.caller.mergeWith(other.caller)

	if len(other.targetLevels) > 0 {
		levels := make(map[string]Level, len(other.targetLevels)+len(s.targetLevels))
		for target, level := range other.targetLevels {
			levels[target] = level
		}
		for target, level := range s.targetLevels {
			levels[target] = level
		}
		s.targetLevels = levels
	}

	if len(other.context) == 0 {
		return
	}

	merged := make([]contextKeyValues, 0, len(other.context)+len(s.context))
	for _, kv := range other.context {
		merged = append(merged, contextKeyValues{
			key:    kv.key,
			values: append([]string(nil), kv.values...),
		})
	}

	for _, kv := range s.context {
		found := false
		for i := range merged {
			if merged[i].key == kv.key {
				merged[i].values = append(merged[i].values, kv.values...)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, kv)
		}
	}
	s.context = merged
}

// overrideWith sets any field set in the other settings on the receiving
// settings, and appends the context of the other settings.
func (s *settings) overrideWith(other settings) {
	if other.writer != nil {
		s.writer = other.writer
	}

	if other.level != nil {
		value := *other.level
		s.level = &value
	}

	if other.format != nil {
		value := *other.format
		s.format = &value
	}

	s.caller.overrideWith(other.caller)

	for target, level := range other.targetLevels {
		SetTargetLevel(target, level)(s)
	}

	for _, kv := range other.context {
		for _, value := range kv.values {
			AddContext(kv.key, value)(s)
		}
	}
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		value := Info
		s.level = &value
	}

	if s.format == nil {
		value := FormatConsole
		s.format = &value
	}

	s.caller.setDefaults()
}
