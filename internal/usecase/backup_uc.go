package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
	"santa-admin-bot/internal/logging"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

var _ BackupUseCase = (*backupUC)(nil)

type BackupUseCase interface {
	// Export returns the snapshot as pretty JSON plus a ULID-stamped
	// filename, so snapshots sort chronologically on disk.
	Export(ctx context.Context, actor int64) (data []byte, filename string, err error)
	Import(ctx context.Context, actor int64, data []byte) (model.ImportStats, error)
}

type backupUC struct {
	backups repository.BackupRepository
	actions repository.ActionLogRepository
	log     *zerolog.Logger
	entropy *ulid.MonotonicEntropy
}

func NewBackupUseCase(backups repository.BackupRepository, actions repository.ActionLogRepository, logger *zerolog.Logger) *backupUC {
	return &backupUC{
		backups: backups,
		actions: actions,
		log:     logger,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (u *backupUC) Export(ctx context.Context, actor int64) ([]byte, string, error) {
	defer logging.TraceDuration(u.log, "BackupUC.Export")()

	snap, err := u.backups.Export(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("export: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal snapshot: %w", err)
	}

	id := ulid.MustNew(ulid.Timestamp(time.Now()), u.entropy)
	filename := fmt.Sprintf("backup_%s.json", id.String())

	if err := u.actions.Append(ctx, &model.ActionLog{
		ActionType: model.ActionBackup,
		UserID:     actor,
		Details:    filename,
	}); err != nil {
		u.log.Warn().Err(err).Msg("audit append failed")
	}
	return data, filename, nil
}

func (u *backupUC) Import(ctx context.Context, actor int64, data []byte) (model.ImportStats, error) {
	defer logging.TraceDuration(u.log, "BackupUC.Import")()

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.ImportStats{}, fmt.Errorf("parse snapshot: %w", err)
	}
	stats, err := u.backups.Import(ctx, snap)
	if err != nil {
		return stats, fmt.Errorf("import: %w", err)
	}
	if err := u.actions.Append(ctx, &model.ActionLog{
		ActionType: model.ActionBackup,
		UserID:     actor,
		Details:    fmt.Sprintf("import: %d records", stats.TotalRecords),
	}); err != nil {
		u.log.Warn().Err(err).Msg("audit append failed")
	}
	u.log.Info().Int("records", stats.TotalRecords).Msg("backup imported")
	return stats, nil
}
