package repository

import (
	"context"

	"santa-admin-bot/internal/domain/model"
)

type UserRepository interface {
	// Upsert inserts the user or refreshes username/full name on conflict.
	Upsert(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// FindByUsername resolves a handle with or without the leading @,
	// falling back to a substring match as a last resort.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Count(ctx context.Context) (int, error)
}
