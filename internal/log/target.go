// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strings"
)

// TargetSeparator joins the nested targets of a logger, so a child
// logger of target "extension" with target "dispatch" logs with the
// target "extension::dispatch".
const TargetSeparator = "::"

const targetKey = "target"

// ErrTargetLevelMalformed is returned by ParseTargetLevels for a
// directive which is not of the form target=level.
var ErrTargetLevelMalformed = errors.New("target level directive is malformed")

// ParseTargetLevels parses comma separated target=level directives,
// for example "extension=debug,extension::decoding=trace".
func ParseTargetLevels(s string) (levels map[string]Level, err error) {
	levels = make(map[string]Level)
	for _, directive := range strings.Split(s, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		target, rawLevel, ok := strings.Cut(directive, "=")
		target = strings.TrimSpace(target)
		if !ok || target == "" {
			return nil, fmt.Errorf("%w: %q", ErrTargetLevelMalformed, directive)
		}

		level, err := ParseLevel(rawLevel)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target, err)
		}
		levels[target] = level
	}
	return levels, nil
}

func (s *settings) target() string {
	for _, kv := range s.context {
		if kv.key == targetKey {
			return strings.Join(kv.values, TargetSeparator)
		}
	}
	return ""
}

// effectiveLevel returns the level of the longest target directive
// matching the logger target, or the logger level.
func (s *settings) effectiveLevel() Level {
	level := *s.level
	if len(s.targetLevels) == 0 {
		return level
	}

	target := s.target()
	if target == "" {
		return level
	}

	longest := -1
	for directive, directiveLevel := range s.targetLevels {
		if len(directive) <= longest {
			continue
		}
		if target == directive || strings.HasPrefix(target, directive+TargetSeparator) {
			longest = len(directive)
			level = directiveLevel
		}
	}
	return level
}
