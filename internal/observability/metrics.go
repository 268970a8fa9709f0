package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RidesPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "linklift", Name: "rides_published_total", Help: "Total rides published"})
	SearchesTotal       = promauto.NewCounter(prometheus.CounterOpts{Namespace: "linklift", Name: "searches_total", Help: "Total ride searches executed"})
	AlertsTotal         = promauto.NewCounter(prometheus.CounterOpts{Namespace: "linklift", Name: "alerts_total", Help: "Total emergency alerts emitted"})

	RequestTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "linklift", Name: "request_transitions_total", Help: "Seat request transitions by kind"},
		[]string{"transition"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "linklift", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "linklift",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
