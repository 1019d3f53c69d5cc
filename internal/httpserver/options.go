// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package httpserver

import "time"

// Default timeouts of a server, used for the timeouts left unset.
const (
	DefaultReadTimeout       = 10 * time.Second
	DefaultReadHeaderTimeout = time.Second
	DefaultShutdownTimeout   = 3 * time.Second
)

// Option sets an optional setting of a server.
type Option func(s *optionalSettings)

type optionalSettings struct {
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

func newOptionalSettings(options []Option) (settings optionalSettings) {
	for _, option := range options {
		option(&settings)
	}
	return settings
}

func orDefault(timeout, defaultTimeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultTimeout
	}
	return timeout
}

func (s *optionalSettings) setDefaults() {
	s.readTimeout = orDefault(s.readTimeout, DefaultReadTimeout)
	s.readHeaderTimeout = orDefault(s.readHeaderTimeout, DefaultReadHeaderTimeout)
	s.shutdownTimeout = orDefault(s.shutdownTimeout, DefaultShutdownTimeout)
}

// ReadTimeout bounds the time to read a whole request.
func ReadTimeout(timeout time.Duration) Option {
	return func(s *optionalSettings) { s.readTimeout = timeout }
}

// ReadHeaderTimeout bounds the time to read the headers of a request.
func ReadHeaderTimeout(timeout time.Duration) Option {
	return func(s *optionalSettings) { s.readHeaderTimeout = timeout }
}

// ShutdownTimeout bounds the graceful shutdown of the server once its
// context is canceled.
func ShutdownTimeout(timeout time.Duration) Option {
	return func(s *optionalSettings) { s.shutdownTimeout = timeout }
}
