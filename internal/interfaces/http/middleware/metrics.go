package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "forgebase"

// HTTPMetrics holds request-level Prometheus metrics
type HTTPMetrics struct {
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec
	AuthFailuresTotal      *prometheus.CounterVec
}

var (
	httpMetricsInstance *HTTPMetrics
	httpMetricsOnce     sync.Once
)

// GetHTTPMetrics returns the process-wide metrics instance, registering
// on the default registry on first use.
func GetHTTPMetrics() *HTTPMetrics {
	httpMetricsOnce.Do(func() {
		httpMetricsInstance = &HTTPMetrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Name:      "http_requests_total",
					Help:      "Total number of HTTP requests processed",
				},
				[]string{"route", "method", "status_code"},
			),
			RequestDurationSeconds: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: metricsNamespace,
					Name:      "http_request_duration_seconds",
					Help:      "HTTP request latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"route", "method"},
			),
			AuthFailuresTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Name:      "auth_failures_total",
					Help:      "Requests rejected by the API key gate",
				},
				[]string{"route", "reason"},
			),
		}
	})
	return httpMetricsInstance
}

// Metrics records per-route request counts and latencies
func Metrics() gin.HandlerFunc {
	m := GetHTTPMetrics()
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.RequestsTotal.WithLabelValues(route, c.Request.Method, status).Inc()
		m.RequestDurationSeconds.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
		if c.Writer.Status() == 401 || c.Writer.Status() == 403 {
			m.AuthFailuresTotal.WithLabelValues(route, status).Inc()
		}
	}
}
