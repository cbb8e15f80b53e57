package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant_client",
			Name:      "requests_total",
			Help:      "Requests issued through the gateway.",
		},
		[]string{"operation"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assistant_client",
			Name:      "request_failures_total",
			Help:      "Requests that failed at transport level or returned a non-success status.",
		},
		[]string{"operation"},
	)
)
