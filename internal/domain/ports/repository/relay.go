package repository

import (
	"context"
	"time"

	"santa-admin-bot/internal/domain/model"
)

type RelayRepository interface {
	SaveMapping(ctx context.Context, adminMessageID, userMessageID int) error
	// FindByAdminMessageID returns domain.ErrNotFound when the message was
	// never relayed (or the mapping has been pruned).
	FindByAdminMessageID(ctx context.Context, adminMessageID int) (*model.RelayPair, error)
	FindByUserMessageID(ctx context.Context, userMessageID int) (*model.RelayPair, error)
	// PruneOlderThan drops mappings past the retention horizon.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	RecordForward(ctx context.Context, userID int64, mt model.MessageType) error
	CountForwardsByType(ctx context.Context) (map[model.MessageType]int, error)
}
