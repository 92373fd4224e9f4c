package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Request latency distribution in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000},
		},
		[]string{"route", "method", "status"},
	)

	sessionsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_purged_total",
			Help: "Expired refresh sessions removed by the cleanup worker.",
		},
	)
)

func init() {
	register(httpRequestDuration, sessionsPurged)
}

func ObserveHTTPRequest(route, method string, status int, latencyMs float64) {
	httpRequestDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(latencyMs)
}

func AddSessionsPurged(n int) { sessionsPurged.Add(float64(n)) }
