package usecase

import (
	"context"
	"errors"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ AccessUseCase = (*accessUC)(nil)

// AccessUseCase answers "may this user run privileged commands". Owners
// come from config plus the roles table, so ownership can be granted at
// runtime without a redeploy.
type AccessUseCase interface {
	IsOwner(ctx context.Context, userID int64) bool
	GrantOwner(ctx context.Context, actor int64, u *model.User) error
	RevokeOwner(ctx context.Context, actor, userID int64) error
}

type accessUC struct {
	staticOwners map[int64]struct{}
	roles        repository.RoleRepository
	log          *zerolog.Logger
}

func NewAccessUseCase(ownerIDs []int64, roles repository.RoleRepository, logger *zerolog.Logger) *accessUC {
	m := make(map[int64]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		m[id] = struct{}{}
	}
	return &accessUC{staticOwners: m, roles: roles, log: logger}
}

func (u *accessUC) IsOwner(ctx context.Context, userID int64) bool {
	if _, ok := u.staticOwners[userID]; ok {
		return true
	}
	role, err := u.roles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			u.log.Warn().Err(err).Int64("user_id", userID).Msg("role lookup failed")
		}
		return false
	}
	return role == model.RoleOwner
}

func (u *accessUC) GrantOwner(ctx context.Context, actor int64, user *model.User) error {
	if user == nil || user.UserID == 0 {
		return domain.ErrInvalidArgument
	}
	return u.roles.Set(ctx, &model.Role{
		UserID:   user.UserID,
		Role:     model.RoleOwner,
		AddedBy:  actor,
		FullName: user.FullName,
		Username: user.Username,
	})
}

func (u *accessUC) RevokeOwner(ctx context.Context, actor, userID int64) error {
	// Config-seeded owners cannot be revoked at runtime.
	if _, ok := u.staticOwners[userID]; ok {
		return domain.ErrNotAuthorized
	}
	return u.roles.Remove(ctx, userID)
}
