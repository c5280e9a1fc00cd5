// Package metrics exposes classification counters. Labels carry the issuer
// and the outcome code, never the number.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cardbrand "github.com/reoring/cardbrand"
)

// OutcomeOK labels successful classifications.
const OutcomeOK = "ok"

// Metrics holds all Prometheus metrics for the endpoint.
type Metrics struct {
	registry        *prometheus.Registry
	Classifications *prometheus.CounterVec
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cardbrand_classifications_total",
			Help: "Classifications by issuer and outcome",
		}, []string{"issuer", "outcome"}),
	}
	reg.MustRegister(m.Classifications)
	return m
}

// Observe records one classification. err is the error returned by Check.
func (m *Metrics) Observe(res cardbrand.Result, err error) {
	m.Classifications.WithLabelValues(string(res.Issuer), Outcome(err)).Inc()
}

// Outcome maps a Check error to its outcome label.
func Outcome(err error) string {
	iss, ok := cardbrand.AsIssues(err)
	if !ok || len(iss) == 0 {
		return OutcomeOK
	}
	return iss[0].Code
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
