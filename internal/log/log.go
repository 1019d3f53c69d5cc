// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"fmt"
	"strings"
	"time"
)

func (l *Logger) log(logLevel Level, s string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.settings.effectiveLevel() > logLevel {
		return
	}

	if len(args) > 0 {
		s = fmt.Sprintf(s, args...)
	}

	levelString := logLevel.String()
	if *l.settings.format == FormatColoured {
		levelString = logLevel.ColouredString()
	}
	padding := strings.Repeat(" ", len("CRITICAL")-len(logLevel.String()))

	line := time.Now().Format(time.RFC3339) + " " +
		levelString + padding + " " + s

	if l.settings.caller.enabled() {
		const depth = 2 // log and the exported caller
		line += "\t" + l.settings.caller.callerString(depth)
	}

	if len(l.settings.context) > 0 {
		keyValues := make([]string, len(l.settings.context))
		for i, kvs := range l.settings.context {
			keyValues[i] = kvs.key + "=" + strings.Join(kvs.values, ",")
		}
		line += "\t" + strings.Join(keyValues, " ")
	}

	_, _ = l.settings.writer.Write([]byte(line + "\n"))
}

// Trace logs with the TRACE level.
func (l *Logger) Trace(s string) { l.log(Trace, s) }

// Debug logs with the DEBUG level.
func (l *Logger) Debug(s string) { l.log(Debug, s) }

// Info logs with the INFO level.
func (l *Logger) Info(s string) { l.log(Info, s) }

// Warn logs with the WARN level.
func (l *Logger) Warn(s string) { l.log(Warn, s) }

// Error logs with the ERROR level.
func (l *Logger) Error(s string) { l.log(Error, s) }

// Critical logs with the CRITICAL level.
func (l *Logger) Critical(s string) { l.log(Critical, s) }

// Tracef formats and logs at the TRACE level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.log(Trace, format, args...)
}

// Debugf formats and logs at the DEBUG level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(Debug, format, args...)
}

// Infof formats and logs at the INFO level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(Info, format, args...)
}

// Warnf formats and logs at the WARN level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(Warn, format, args...)
}

// Errorf formats and logs at the ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(Error, format, args...)
}

// Criticalf formats and logs at the CRITICAL level.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.log(Critical, format, args...)
}
