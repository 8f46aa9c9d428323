package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WorkoutsWritten counts successfully committed workout transactions.
	WorkoutsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "przone_workouts_written_total",
		Help: "Total number of workouts committed",
	})

	// WorkoutsDeleted counts successfully committed workout deletions.
	WorkoutsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "przone_workouts_deleted_total",
		Help: "Total number of workouts deleted",
	})

	// TransactionRollbacks counts rolled-back write/delete transactions by operation.
	TransactionRollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "przone_transaction_rollbacks_total",
		Help: "Total number of rolled-back workout transactions",
	}, []string{"operation"})

	// QueryLatency records database query latency by operation and table.
	QueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "przone_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// ObserveQuery records the latency of a database query started at `start`.
func ObserveQuery(operation, table string, start time.Time) {
	QueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
