// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package metrics records trust decisions as Prometheus metrics and exposes
// them over HTTP.
package metrics

import (
	"time"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/trust"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "x509_trust_manager"

// Outcome label values.
const (
	OutcomeTrusted  = "trusted"
	OutcomeRejected = "rejected"
)

// Collector holds the trust manager metrics. A nil *Collector records nothing.
type Collector struct {
	verifications *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	issuers       prometheus.Gauge
}

// New registers the trust manager metrics with reg. A nil reg uses
// [prometheus.DefaultRegisterer].
//
// New panics if the metrics are already registered with reg, as
// [promauto] does.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Number of peer chain verifications by role, outcome and failure kind.",
		}, []string{"role", "outcome", "kind"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verification_duration_seconds",
			Help:      "Time spent verifying a peer chain.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"role"}),
		issuers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "accepted_issuers",
			Help:      "Number of accepted issuers reported by the last enumeration.",
		}),
	}
}

// ObserveVerification records the result of one chain verification.
// A nil err counts as trusted; otherwise the failure kind is taken from err.
func (c *Collector) ObserveVerification(role trust.Role, err error, elapsed time.Duration) {
	if c == nil {
		return
	}

	outcome, kind := OutcomeTrusted, ""
	if err != nil {
		outcome = OutcomeRejected
		kind = "Unknown"
		if k := trust.KindOf(err); k != 0 {
			kind = k.String()
		}
	}

	c.verifications.WithLabelValues(role.String(), outcome, kind).Inc()
	c.duration.WithLabelValues(role.String()).Observe(elapsed.Seconds())
}

// SetAcceptedIssuers records the size of the last accepted issuer enumeration.
func (c *Collector) SetAcceptedIssuers(n int) {
	if c == nil {
		return
	}
	c.issuers.Set(float64(n))
}
