package repository

import (
	"context"

	"santa-admin-bot/internal/domain/model"
)

type BirthdayRepository interface {
	Upsert(ctx context.Context, b *model.Birthday) error
	Delete(ctx context.Context, userID int64) (bool, error)
	Get(ctx context.Context, userID int64) (*model.Birthday, error)
	// All returns birthdays ordered by date.
	All(ctx context.Context) ([]model.Birthday, error)
	// ByDayMonth matches the DD.MM prefix of the stored date.
	ByDayMonth(ctx context.Context, key string) ([]model.Birthday, error)

	Greeting(ctx context.Context) (model.GreetingSettings, error)
	SetGreetingGif(ctx context.Context, fileID string) error
	SetGreetingText(ctx context.Context, text string) error
}
