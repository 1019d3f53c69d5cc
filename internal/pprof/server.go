// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package pprof serves the Go runtime profiles over HTTP while the
// simulator runs chain extension calls, and labels the calls so their
// samples can be told apart.
package pprof

import (
	"net/http"
	"net/http/pprof"

	"github.com/ChainSafe/chainext/internal/httpserver"
)

// profiles served by name at /debug/pprof/<name>.
var profiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

// NewServer returns a server of the profiling endpoints listening on
// the address given.
func NewServer(address string, logger httpserver.Logger,
	options ...httpserver.Option) *httpserver.Server {
	handler := http.NewServeMux()
	handler.HandleFunc("/debug/pprof/", pprof.Index)
	handler.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	handler.HandleFunc("/debug/pprof/profile", pprof.Profile)
	handler.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	handler.HandleFunc("/debug/pprof/trace", pprof.Trace)
	for _, profile := range profiles {
		handler.Handle("/debug/pprof/"+profile, pprof.Handler(profile))
	}
	return httpserver.New("pprof", address, handler, logger, options...)
}
