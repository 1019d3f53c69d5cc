// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

type callerSettings struct {
	file *bool
	line *bool
	funC *bool
}

func mergeBool(existing, other *bool) *bool {
	if existing != nil || other == nil {
		return existing
	}
	value := *other
	return &value
}

func overrideBool(existing, other *bool) *bool {
	if other == nil {
		return existing
	}
	value := *other
	return &value
}

func (c *callerSettings) mergeWith(other callerSettings) {
	c.file = mergeBool(c.file, other.file)
	c.line = mergeBool(c.line, other.line)
	c.funC = mergeBool(c.funC, other.funC)
}

func (c *callerSettings) overrideWith(other callerSettings) {
	c.file = overrideBool(c.file, other.file)
	c.line = overrideBool(c.line, other.line)
	c.funC = overrideBool(c.funC, other.funC)
}

func (c *callerSettings) setDefaults() {
	disabled := false
	c.file = mergeBool(c.file, &disabled)
	c.line = mergeBool(c.line, &disabled)
	c.funC = mergeBool(c.funC, &disabled)
}

func (c callerSettings) enabled() bool {
	return *c.file || *c.line || *c.funC
}

// callerString returns the caller information requested by the settings,
// with depth being the number of frames to skip above this function.
func (c callerSettings) callerString(depth int) (s string) {
	pc, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return "error"
	}

	fields := make([]string, 0, 3) //nolint:gomnd

	if *c.file {
		fields = append(fields, filepath.Base(file))
	}

	if *c.line {
		fields = append(fields, "L"+strconv.Itoa(line))
	}

	if *c.funC {
		details := runtime.FuncForPC(pc)
		if details != nil {
			funcName := strings.TrimLeft(filepath.Ext(details.Name()), ".")
			fields = append(fields, funcName)
		}
	}

	return strings.Join(fields, ":")
}
