// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pprof

// DefaultListeningAddress is the listening address of the profiling
// server when none is set.
const DefaultListeningAddress = "localhost:6060"

// Settings are the settings of the profiling service.
type Settings struct {
	ListeningAddress string
	// BlockProfileRate is given to runtime.SetBlockProfileRate while the
	// service runs. Zero leaves block profiling off.
	BlockProfileRate int
	// MutexProfileRate is given to runtime.SetMutexProfileFraction
	// while the service runs. Zero leaves mutex profiling off.
	MutexProfileRate int
}

func (s *Settings) setDefaults() {
	if s.ListeningAddress == "" {
		s.ListeningAddress = DefaultListeningAddress
	}
}
