// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RFC3339 format
const timePrefixRegex = `^([0-9]+)-` +
	`(0[1-9]|1[012])-` +
	`(0[1-9]|[12][0-9]|3[01])[Tt]([01][0-9]|2[0-3])` +
	`:([0-5][0-9])` +
	`:([0-5][0-9]|60)(\.[0-9]+)?(([Zz])|([\+|\-]([01][0-9]|2[0-3])` +
	`:[0-5][0-9])) `

func levelPtr(l Level) *Level { return &l }

func formatPtr(f Format) *Format { return &f }

func newCallerSettings(file, line, funC bool) callerSettings {
	return callerSettings{
		file: &file,
		line: &line,
		funC: &funC,
	}
}

// logLines returns the lines written to buffer, each stripped of its
// timestamp prefix.
func logLines(t *testing.T, buffer *bytes.Buffer) (lines []string) {
	t.Helper()

	output := buffer.String()
	if output == "" {
		return nil
	}
	require.True(t, strings.HasSuffix(output, "\n"), "output %q has no trailing newline", output)

	prefix := regexp.MustCompile(timePrefixRegex)
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		location := prefix.FindStringIndex(line)
		require.NotNil(t, location, "line %q has no timestamp", line)
		lines = append(lines, line[location[1]:])
	}
	return lines
}
