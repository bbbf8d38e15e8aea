package repository

import (
	"context"

	"santa-admin-bot/internal/domain/model"
)

// BackupRepository exports and restores whole-database snapshots. Import
// runs inside a single transaction: every table named in the snapshot is
// cleared and refilled, or nothing changes at all.
type BackupRepository interface {
	Export(ctx context.Context) (model.Snapshot, error)
	Import(ctx context.Context, snap model.Snapshot) (model.ImportStats, error)
}
