package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cvbuilder"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	blobOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "blob",
		Name:      "operations_total",
		Help:      "Blob storage operations by kind and outcome.",
	}, []string{"operation", "outcome"})

	blobSweepDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "blob",
		Name:      "sweep_deleted_total",
		Help:      "Objects removed by the unused-blob sweep.",
	}, []string{"outcome"})

	resumeSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "resume",
		Name:      "saves_total",
		Help:      "Resume saves by mode (create/update).",
	}, []string{"mode"})
)

// Исходы операций
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// BlobOperation учитывает одну операцию с blob-хранилищем.
func BlobOperation(operation, outcome string) {
	blobOperations.WithLabelValues(operation, outcome).Inc()
}

// SweepResult учитывает итог очистки.
func SweepResult(deleted, failed int) {
	blobSweepDeleted.WithLabelValues(OutcomeSuccess).Add(float64(deleted))
	blobSweepDeleted.WithLabelValues(OutcomeFailure).Add(float64(failed))
}

// ResumeSaved учитывает сохранение резюме.
func ResumeSaved(created bool) {
	mode := "update"
	if created {
		mode = "create"
	}
	resumeSaves.WithLabelValues(mode).Inc()
}

// Middleware собирает метрики HTTP по шаблону маршрута.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler отдает /metrics.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
