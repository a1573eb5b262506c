package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ComponentFeedback  = "feedback"
	ComponentQuestions = "questions"

	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeCacheHit = "cache_hit"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prepforge",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "prepforge",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	generation = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prepforge",
		Name:      "generation_outcomes_total",
		Help:      "Outcomes of question generation and answer evaluation",
	}, []string{"component", "outcome"})

	progressRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "prepforge",
		Name:      "progress_cas_retries_total",
		Help:      "Progress updates retried after a concurrent write",
	})

	progressApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prepforge",
		Name:      "progress_updates_total",
		Help:      "Progress aggregate updates by source",
	}, []string{"source"})
)

func ObserveGeneration(component, outcome string) {
	generation.WithLabelValues(component, outcome).Inc()
}

func ObserveProgressRetry() {
	progressRetries.Inc()
}

// ObserveProgressApplied counts answers folded into a progress aggregate.
// source is "request", "reconcile" or "rebuild".
func ObserveProgressApplied(source string, n int) {
	progressApplied.WithLabelValues(source).Add(float64(n))
}

// Middleware records request metrics labelled with the gin route template.
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
		httpLatency.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
