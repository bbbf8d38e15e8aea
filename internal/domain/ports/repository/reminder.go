package repository

import (
	"context"
	"time"

	"santa-admin-bot/internal/domain/model"
)

type ReminderRepository interface {
	Add(ctx context.Context, r *model.Reminder) (int64, error)
	// Due returns unsent reminders with remind_at <= now.
	Due(ctx context.Context, now time.Time) ([]model.Reminder, error)
	MarkSent(ctx context.Context, reminderID int64) error
}
