// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color" //nolint:misspell
)

// Level is the level of the logger.
type Level uint8

// Levels from the most to the least verbose.
const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Critical
)

var levelNames = [...]string{
	Trace:    "TRACE",
	Debug:    "DEBUG",
	Info:     "INFO",
	Warn:     "WARN",
	Error:    "ERROR",
	Critical: "CRITICAL",
}

var levelColours = [...]color.Attribute{
	Trace:    color.FgHiCyan,
	Debug:    color.FgHiBlue,
	Info:     color.FgCyan,
	Warn:     color.FgYellow,
	Error:    color.FgHiRed,
	Critical: color.FgRed,
}

// levelAliases are the short level names accepted by ParseLevel.
var levelAliases = map[string]Level{
	"TRCE": Trace,
	"DBUG": Debug,
	"EROR": Error,
	"CRIT": Critical,
}

func (level Level) String() (s string) {
	if int(level) >= len(levelNames) {
		return "???"
	}
	return levelNames[level]
}

// ColouredString returns the level string in the colour of the level.
func (level Level) ColouredString() (s string) {
	attribute := color.Reset
	if int(level) < len(levelColours) {
		attribute = levelColours[level]
	}
	return color.New(attribute).Sprint(level.String())
}

// ErrLevelNotRecognised is returned by ParseLevel for an unknown level.
var ErrLevelNotRecognised = errors.New("level is not recognised")

// ParseLevel parses a level name, ignoring case and surrounding spaces.
// Short forms such as "dbug" or "eror" are accepted.
func ParseLevel(s string) (level Level, err error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, levelName := range levelNames {
		if name == levelName {
			return Level(i), nil
		}
	}
	level, ok := levelAliases[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrLevelNotRecognised, s)
	}
	return level, nil
}
