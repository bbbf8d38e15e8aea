package repository

import (
	"context"

	"santa-admin-bot/internal/domain/model"
)

type ActionLogRepository interface {
	Append(ctx context.Context, a *model.ActionLog) error
	// Exists reports whether an entry with the exact action/target/details
	// triple was already recorded. The birthday worker keys its per-day
	// dedup on this.
	Exists(ctx context.Context, actionType string, targetUserID int64, details string) (bool, error)
}
