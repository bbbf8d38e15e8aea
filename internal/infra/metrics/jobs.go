package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	birthdayGreetings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_birthday_greetings_total",
			Help: "Birthday greetings delivered to the user chat.",
		},
	)

	remindersDelivered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_reminders_delivered_total",
			Help: "Reminders delivered by the reminder worker.",
		},
	)

	workerErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_worker_errors_total",
			Help: "Per-tick worker failures, by worker.",
		},
		[]string{"worker"},
	)
)

func init() { register(birthdayGreetings, remindersDelivered, workerErrors) }

func AddBirthdayGreetings(n int)  { birthdayGreetings.Add(float64(n)) }
func AddRemindersDelivered(n int) { remindersDelivered.Add(float64(n)) }
func IncWorkerError(worker string) {
	workerErrors.WithLabelValues(norm(worker)).Inc()
}
