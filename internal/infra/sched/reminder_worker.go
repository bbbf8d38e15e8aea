package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"santa-admin-bot/internal/infra/metrics"
	"santa-admin-bot/internal/usecase"
)

// ReminderWorker delivers due reminders on a short tick. Failed sends
// stay unsent and are retried on the next tick.
type ReminderWorker struct {
	interval  time.Duration
	reminders usecase.ReminderUseCase
	log       *zerolog.Logger
}

func NewReminderWorker(interval time.Duration, reminders usecase.ReminderUseCase, logger *zerolog.Logger) *ReminderWorker {
	l := logger.With().Str("component", "ReminderWorker").Logger()
	return &ReminderWorker{
		interval:  interval,
		reminders: reminders,
		log:       &l,
	}
}

func (w *ReminderWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting reminder worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping reminder worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.reminders.DeliverDue(ctx, time.Now())
			if err != nil {
				metrics.IncWorkerError("reminder")
				w.log.Error().Err(err).Msg("reminder worker error")
			}
			if n > 0 {
				metrics.AddRemindersDelivered(n)
				w.log.Info().Int("count", n).Msg("reminders delivered")
			}
		}
	}
}
