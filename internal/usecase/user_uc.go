package usecase

import (
	"context"
	"strconv"
	"strings"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ UserUseCase = (*userUC)(nil)

type UserUseCase interface {
	// Observe upserts the sender of an inbound message.
	Observe(ctx context.Context, userID int64, username, fullName string) error
	// Resolve turns a command token (@handle or numeric ID) into a user.
	// Numeric IDs resolve even when the user was never seen.
	Resolve(ctx context.Context, token string) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, log: logger}
}

func (u *userUC) Observe(ctx context.Context, userID int64, username, fullName string) error {
	user, err := model.NewUser(userID, username, fullName)
	if err != nil {
		return err
	}
	return u.users.Upsert(ctx, user)
}

func (u *userUC) Resolve(ctx context.Context, token string) (*model.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrInvalidArgument
	}
	if id, err := strconv.ParseInt(token, 10, 64); err == nil && id != 0 {
		user, err := u.users.FindByID(ctx, id)
		if err == nil {
			return user, nil
		}
		// An unknown numeric ID is still addressable on Telegram.
		return &model.User{UserID: id}, nil
	}
	return u.users.FindByUsername(ctx, token)
}

func (u *userUC) Count(ctx context.Context) (int, error) {
	return u.users.Count(ctx)
}
