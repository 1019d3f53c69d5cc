// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package metrics

import (
	"fmt"
	"time"

	"github.com/ChainSafe/chainext/lib/extension"
	"github.com/ChainSafe/chainext/lib/primitives"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chainext_extension"

// Outcomes of an extension call.
const (
	OutcomeSuccess = "success"
	OutcomeStatus  = "status"
	OutcomeTrap    = "trap"
)

var _ extension.Observer = (*ExtensionObserver)(nil)

// ExtensionObserver records extension calls by category and outcome,
// the status codes returned, the call durations and the gas consumed.
type ExtensionObserver struct {
	calls     *prometheus.CounterVec
	statuses  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	refTime   prometheus.Counter
	proofSize prometheus.Counter
}

// NewExtensionObserver returns an observer with its collectors
// registered on the registerer given.
func NewExtensionObserver(registerer prometheus.Registerer) *ExtensionObserver {
	factory := promauto.With(registerer)
	return &ExtensionObserver{
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "total number of chain extension calls",
		}, []string{"category", "outcome"}),
		statuses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_total",
			Help:      "total number of non zero status codes returned to contracts",
		}, []string{"status"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "duration of chain extension calls",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"category"}),
		refTime: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ref_time_consumed_total",
			Help:      "total reference time consumed by chain extension calls",
		}),
		proofSize: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proof_size_consumed_total",
			Help:      "total proof size consumed by chain extension calls",
		}),
	}
}

// ObserveCall records the outcome of an extension call.
func (o *ExtensionObserver) ObserveCall(id extension.Identifier, status extension.RetVal,
	err error, elapsed time.Duration) {
	category := fmt.Sprint(id.Category())
	outcome := OutcomeSuccess
	switch {
	case err != nil:
		outcome = OutcomeTrap
	case status != 0:
		outcome = OutcomeStatus
		o.statuses.WithLabelValues(fmt.Sprintf("0x%08x", uint32(status))).Inc()
	}
	o.calls.WithLabelValues(category, outcome).Inc()
	o.durations.WithLabelValues(category).Observe(elapsed.Seconds())
}

// ObserveGas records the gas consumed by a call.
func (o *ExtensionObserver) ObserveGas(consumed primitives.Weight) {
	o.refTime.Add(float64(consumed.RefTime))
	o.proofSize.Add(float64(consumed.ProofSize))
}
