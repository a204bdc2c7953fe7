package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_admin_http_requests_total",
			Help: "Total number of API requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lead_admin_http_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	FieldsExcluded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadform_fields_excluded_total",
			Help: "Fields dropped by the lead form field policy when a form is saved",
		},
		[]string{"context"},
	)

	DocumentsUploaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_admin_documents_uploaded_total",
			Help: "Uploaded documents by storage backend and whether they were converted to PDF",
		},
		[]string{"storage", "converted"},
	)
)

// Middleware records request counts and latencies per route template
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
