package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InteractionsTotal counts like/favorite transitions by outcome code.
	InteractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_interactions_total",
		Help: "Like and favorite transitions by kind, action and outcome",
	}, []string{"kind", "action", "outcome"})

	// DatabaseQueryLatency records repository latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gallery_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheLookups counts cache-aside lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_cache_lookups_total",
		Help: "Cache lookups by result",
	}, []string{"result"})

	// WebSocketConnections is the gauge of open notification sockets.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gallery_websocket_connections",
		Help: "Number of active notification WebSocket connections",
	})

	// NotificationsPublished counts published owner notifications by event type.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_notifications_published_total",
		Help: "Owner notifications published by event type",
	}, []string{"event"})

	// WebSocketBackpressureDrops counts messages dropped because a client was too slow.
	WebSocketBackpressureDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gallery_websocket_backpressure_drops_total",
		Help: "Notification messages dropped due to backpressure",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordInteraction counts one like/favorite transition.
func RecordInteraction(kind, action, outcome string) {
	InteractionsTotal.WithLabelValues(kind, action, outcome).Inc()
}
