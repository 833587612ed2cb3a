package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Upstream platform API requests by host and outcome.",
	}, []string{"host", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Upstream platform API request latency by host.",
		Buckets: prometheus.DefBuckets,
	}, []string{"host"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_retries_total",
		Help: "Retried upstream requests by host and trigger.",
	}, []string{"host", "trigger"})
)
