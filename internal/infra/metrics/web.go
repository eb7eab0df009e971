package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		webRequestsTotal,
		webRequestLatency,
	)
}

var (
	webRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "web_requests_total",
			Help: "HTTP requests served by the card picker, by route and status.",
		},
		[]string{"route", "status"},
	)

	webRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "web_request_latency_ms",
			Help:    "HTTP request latency distribution in milliseconds.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"route"},
	)
)

func ObserveWebRequest(route string, status int, elapsed time.Duration) {
	webRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	webRequestLatency.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
}
