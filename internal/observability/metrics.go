package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// audit-api metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "audit_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "audit_active_requests",
		Help: "Current in-flight requests",
	})

	// property source metrics
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_upstream_requests_total",
		Help: "Property source reads by outcome",
	}, []string{"source", "code"})

	UpstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "audit_upstream_duration_seconds",
		Help:    "Property source read latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"source"})

	// audit-rpc metrics
	RPCRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_rpc_requests_total",
		Help: "Total gRPC requests",
	}, []string{"method", "code"})
)

func RegisterAll(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, ActiveRequests,
		UpstreamRequestsTotal, UpstreamDuration,
		RPCRequestsTotal,
	)
}
