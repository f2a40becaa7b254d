// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"

	"github.com/cpmech/gomat/mdl/solid"
	"github.com/cpmech/gomat/mdl/state"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters of a domain
type Metrics struct {
	Points   prometheus.Counter     // number of evaluated points
	Failures *prometheus.CounterVec // numerical failures by kind: inverted, not_finite, other
	Duration prometheus.Histogram   // duration of Evaluate in seconds
}

// NewMetrics allocates metrics registered on reg. A nil reg gives unregistered metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Points: f.NewCounter(prometheus.CounterOpts{
			Namespace: "gomat",
			Name:      "points_evaluated_total",
			Help:      "Number of material points evaluated",
		}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gomat",
			Name:      "point_failures_total",
			Help:      "Number of numerical failures at material points",
		}, []string{"kind"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gomat",
			Name:      "evaluate_duration_seconds",
			Help:      "Duration of the evaluation of all points of a domain",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
}

// failure records a numerical failure
func (o *Metrics) failure(err error) {
	kind := "other"
	switch {
	case errors.Is(err, state.ErrInverted):
		kind = "inverted"
	case errors.Is(err, solid.ErrNotFinite):
		kind = "not_finite"
	}
	o.Failures.WithLabelValues(kind).Inc()
}
