package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "places_requests_total",
		Help: "Remote place service calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "places_request_duration_seconds",
		Help:    "Remote place service call latency by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// ObserveRequest records one remote call. outcome is "ok", "error" for
// transport failures, or the HTTP status code for remote rejections.
func ObserveRequest(operation string, statusCode int, err error, elapsed time.Duration) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case statusCode < 200 || statusCode > 299:
		outcome = strconv.Itoa(statusCode)
	}

	requestsTotal.WithLabelValues(operation, outcome).Inc()
	requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
