package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hellonames",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hellonames",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	namesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hellonames",
		Name:      "names_submitted_total",
		Help:      "Names accepted by the store.",
	})

	writesThrottled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hellonames",
		Name:      "writes_throttled_total",
		Help:      "Write requests rejected by the rate limiter.",
	})
)
