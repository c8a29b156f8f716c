package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	webhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of webhook events dispatched",
		},
		[]string{"kind"},
	)

	messagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_sent_total",
			Help: "Total number of outbound send attempts",
		},
		[]string{"outcome"},
	)

	conversationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversations_completed_total",
			Help: "Total number of completed data-collection conversations",
		},
	)
)

// Metrics records request counts and latency for every route
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordWebhookEvent counts one dispatched webhook event ("message" or "postback")
func RecordWebhookEvent(kind string) {
	webhookEvents.WithLabelValues(kind).Inc()
}

// RecordSend counts one outbound send attempt ("delivered" or "failed")
func RecordSend(outcome string) {
	messagesSent.WithLabelValues(outcome).Inc()
}

// RecordConversationCompleted counts one finished collection cycle
func RecordConversationCompleted() {
	conversationsCompleted.Inc()
}
