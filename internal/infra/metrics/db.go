package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var dbQueryDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_ms",
		Help:    "Latency of SQLite statements in milliseconds, by statement kind.",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250},
	},
	[]string{"op"}, // 'exec', 'query', 'query_row'
)

func init() { register(dbQueryDuration) }

func ObserveDBQuery(op string, d time.Duration) {
	dbQueryDuration.WithLabelValues(op).Observe(float64(d.Nanoseconds()) / 1e6)
}
