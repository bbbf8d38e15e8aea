package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	relayedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_relayed_messages_total",
			Help: "Messages copied between the admin and user chats, by direction and type.",
		},
		[]string{"direction", "type"},
	)

	droppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_dropped_messages_total",
			Help: "Inbound messages not relayed, by cause (banned/muted/blacklisted/unconfigured).",
		},
		[]string{"cause"},
	)

	relayLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_relay_latency_ms",
			Help:    "Latency of one relay round trip in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
	)
)

func init() { register(relayedTotal, droppedTotal, relayLatency) }

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncRelayed(direction, msgType string) {
	relayedTotal.WithLabelValues(norm(direction), norm(msgType)).Inc()
}

func IncDropped(cause string) {
	droppedTotal.WithLabelValues(norm(cause)).Inc()
}

func ObserveRelayLatency(ms float64) {
	relayLatency.Observe(ms)
}
