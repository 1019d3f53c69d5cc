// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package metrics serves Prometheus metrics and records the outcome of
// chain extension calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/ChainSafe/chainext/internal/httpserver"
	"github.com/ChainSafe/chainext/internal/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var logger log.LeveledLogger = log.NewFromGlobal(log.AddContext("pkg", "metrics"))

const stopTimeout = 30 * time.Second

// Path is the HTTP path the metrics are served at.
const Path = "/metrics"

// NewServer returns a service serving the metrics gathered by the
// gatherer given at the address given.
func NewServer(address string, gatherer prometheus.Gatherer) *httpserver.Service {
	handler := http.NewServeMux()
	handler.Handle(Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}))
	server := httpserver.New("metrics", address, handler, logger)
	return httpserver.NewService(server, stopTimeout)
}
