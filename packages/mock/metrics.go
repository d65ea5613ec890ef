package mock

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// unmatchedRoute labels requests no route answered.
const unmatchedRoute = "unmatched"

type metrics struct {
	requests *prometheus.CounterVec
}

func newMetrics(registry prometheus.Registerer) *metrics {
	factory := promauto.With(registry)

	return &metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "restharness",
				Subsystem: "mock",
				Name:      "requests_total",
				Help:      "Requests served by the mock server by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *metrics) record(method, route string, status int) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
