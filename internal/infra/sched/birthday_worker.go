package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"santa-admin-bot/internal/infra/metrics"
	"santa-admin-bot/internal/usecase"
)

// BirthdayWorker periodically greets users whose birthday is today,
// evaluated in the configured timezone.
type BirthdayWorker struct {
	interval  time.Duration
	loc       *time.Location
	birthdays usecase.BirthdayUseCase
	log       *zerolog.Logger
}

func NewBirthdayWorker(interval time.Duration, loc *time.Location, birthdays usecase.BirthdayUseCase, logger *zerolog.Logger) *BirthdayWorker {
	l := logger.With().Str("component", "BirthdayWorker").Logger()
	return &BirthdayWorker{
		interval:  interval,
		loc:       loc,
		birthdays: birthdays,
		log:       &l,
	}
}

func (w *BirthdayWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting birthday worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping birthday worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.birthdays.GreetToday(ctx, time.Now().In(w.loc))
			if err != nil {
				metrics.IncWorkerError("birthday")
				w.log.Error().Err(err).Msg("birthday worker error")
			}
			if n > 0 {
				metrics.AddBirthdayGreetings(n)
				w.log.Info().Int("count", n).Msg("birthday greetings sent")
			}
		}
	}
}
