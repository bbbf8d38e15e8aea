package repository

import (
	"context"

	"santa-admin-bot/internal/domain/model"
)

type RoleRepository interface {
	Set(ctx context.Context, r *model.Role) error
	Remove(ctx context.Context, userID int64) error
	// Get returns domain.ErrNotFound when the user holds no role.
	Get(ctx context.Context, userID int64) (model.RoleName, error)
	ListByRole(ctx context.Context, role model.RoleName) ([]model.Role, error)
}
