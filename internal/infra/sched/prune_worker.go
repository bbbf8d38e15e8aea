package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"santa-admin-bot/internal/infra/metrics"
	"santa-admin-bot/internal/usecase"
)

// PruneWorker drops relay message mappings older than the retention
// window so the mapping table does not grow without bound.
type PruneWorker struct {
	interval  time.Duration
	retention time.Duration
	relay     usecase.RelayUseCase
	log       *zerolog.Logger
}

func NewPruneWorker(interval, retention time.Duration, relay usecase.RelayUseCase, logger *zerolog.Logger) *PruneWorker {
	l := logger.With().Str("component", "PruneWorker").Logger()
	return &PruneWorker{
		interval:  interval,
		retention: retention,
		relay:     relay,
		log:       &l,
	}
}

func (w *PruneWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("retention", w.retention).Msg("Starting prune worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping prune worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.relay.PruneMappings(ctx, w.retention)
			if err != nil {
				metrics.IncWorkerError("prune")
				w.log.Error().Err(err).Msg("prune worker error")
			}
			if n > 0 {
				w.log.Info().Int64("count", n).Msg("stale mappings pruned")
			}
		}
	}
}
