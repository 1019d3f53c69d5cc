// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

// LeveledLogger is the logger interface used by the packages of this
// repository, satisfied by *Logger.
type LeveledLogger interface {
	Trace(s string)
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(s string)
	Critical(s string)
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})
}

var _ LeveledLogger = (*Logger)(nil)
