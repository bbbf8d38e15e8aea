package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Bot commands processed, by command and outcome (ok/denied/error/invalid).",
		},
		[]string{"command", "outcome"},
	)

	telegramErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_telegram_api_errors_total",
			Help: "Telegram API call failures, by kind (chat_not_found/unauthorized/other).",
		},
		[]string{"kind"},
	)
)

func init() { register(commandsTotal, telegramErrors) }

func IncCommand(command, outcome string) {
	commandsTotal.WithLabelValues(norm(command), norm(outcome)).Inc()
}

func IncTelegramError(kind string) {
	telegramErrors.WithLabelValues(norm(kind)).Inc()
}
