package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FeedFetches counts feed fetch attempts by outcome ("success", "error")
	FeedFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vulnboard",
			Name:      "feed_fetches_total",
			Help:      "Total number of feed fetch attempts",
		},
		[]string{"feed", "outcome"},
	)

	// FeedRecords reports how many records the last fetch of each feed yielded
	FeedRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "vulnboard",
			Name:      "feed_records",
			Help:      "Number of records returned by the last fetch of a feed",
		},
		[]string{"feed"},
	)

	// RefreshDuration observes full refresh cycles
	RefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vulnboard",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of inventory refresh cycles",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// InventoryRows reports the number of consolidated rows currently shown
	InventoryRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vulnboard",
			Name:      "inventory_rows",
			Help:      "Number of consolidated vulnerability rows in the current snapshot",
		},
	)

	// SortSelections counts column sort selections
	SortSelections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vulnboard",
			Name:      "sort_selections_total",
			Help:      "Total number of sort column selections",
		},
		[]string{"key"},
	)

	// WSClients tracks connected dashboard websocket clients
	WSClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vulnboard",
			Name:      "websocket_clients",
			Help:      "Number of connected websocket clients",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry
// This function is idempotent and can be called multiple times safely
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		prometheus.DefaultRegisterer.Register(FeedFetches)
		prometheus.DefaultRegisterer.Register(FeedRecords)
		prometheus.DefaultRegisterer.Register(RefreshDuration)
		prometheus.DefaultRegisterer.Register(InventoryRows)
		prometheus.DefaultRegisterer.Register(SortSelections)
		prometheus.DefaultRegisterer.Register(WSClients)
	})
}
