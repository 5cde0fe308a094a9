package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cinewish", Name: "http_requests_total", Help: "HTTP requests by route and status."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "cinewish", Name: "http_request_duration_seconds", Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets},
		[]string{"route"},
	)
	CatalogRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cinewish", Name: "catalog_requests_total", Help: "Upstream movie catalog calls by endpoint and outcome."},
		[]string{"endpoint", "outcome"},
	)
	CatalogCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cinewish", Name: "catalog_cache_total", Help: "Catalog cache lookups by result."},
		[]string{"result"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cinewish", Name: "rate_limit_rejected_total", Help: "Requests rejected by the rate limiter."},
		[]string{"route"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(CatalogRequests)
	reg.MustRegister(CatalogCache)
	reg.MustRegister(RateLimitRejected)
}
