// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "privtx"

// Outcome labels
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Metrics tracks builder submissions. A nil *Metrics records nothing.
type Metrics struct {
	submissions   *prometheus.CounterVec
	constructions *prometheus.CounterVec
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builder_submissions_total",
			Help:      "Transactions sent to builders, by builder and outcome.",
		}, []string{"builder", "outcome"}),
		constructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builder_construction_failures_total",
			Help:      "Builder clients that could not be constructed.",
		}, []string{"builder"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Private transaction requests, by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "builder_request_duration_seconds",
			Help:      "Duration of one builder call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"builder"}),
	}
	for _, c := range []prometheus.Collector{m.submissions, m.constructions, m.requests, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeSubmission(kind Kind, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(kind.String(), outcome).Inc()
	m.latency.WithLabelValues(kind.String()).Observe(took.Seconds())
}

func (m *Metrics) observeConstructionFailure(kind Kind) {
	if m == nil {
		return
	}
	m.constructions.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) observeRequest(err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(requestOutcome(err)).Inc()
}

func requestOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeAccepted
	case errors.Is(err, ErrFailedToGetBuilders):
		return "no_builders"
	case errors.Is(err, ErrAllBuildersFailed):
		return "all_failed"
	default:
		return "decode_failed"
	}
}
