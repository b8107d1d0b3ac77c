// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records session lifecycle and login events.
type Collector struct {
	sessionsStarted   *prometheus.CounterVec
	sessionsCompleted prometheus.Counter
	sessionsAbandoned prometheus.Counter
	logins            *prometheus.CounterVec
}

// NewCollector registers the metrics on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "typing_sessions_started_total",
			Help: "Game sessions started, by requested difficulty.",
		}, []string{"difficulty"}),
		sessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typing_sessions_completed_total",
			Help: "Game sessions completed with metrics.",
		}),
		sessionsAbandoned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typing_sessions_abandoned_total",
			Help: "Game sessions abandoned before completion.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "typing_logins_total",
			Help: "Successful logins, by identity provider.",
		}, []string{"provider"}),
	}

	reg.MustRegister(
		c.sessionsStarted,
		c.sessionsCompleted,
		c.sessionsAbandoned,
		c.logins,
	)

	return c
}

func (c *Collector) RecordSessionStarted(difficulty string) {
	c.sessionsStarted.WithLabelValues(difficulty).Inc()
}

func (c *Collector) RecordSessionCompleted() {
	c.sessionsCompleted.Inc()
}

func (c *Collector) RecordSessionAbandoned() {
	c.sessionsAbandoned.Inc()
}

func (c *Collector) RecordLogin(provider string) {
	c.logins.WithLabelValues(provider).Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
