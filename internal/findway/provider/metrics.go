package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "findway_upstream_requests_total",
		Help: "Requests sent to the flight provider by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "findway_upstream_request_duration_seconds",
		Help:    "Latency of flight provider requests",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 15},
	}, []string{"endpoint"})
)
