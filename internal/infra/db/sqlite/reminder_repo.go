package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
)

var _ repository.ReminderRepository = (*ReminderRepo)(nil)

type ReminderRepo struct {
	db conn
}

func NewReminderRepo(s *Store) *ReminderRepo { return &ReminderRepo{db: s.conn()} }

func (r *ReminderRepo) Add(ctx context.Context, rem *model.Reminder) (int64, error) {
	if rem == nil || rem.UserID == 0 || rem.Text == "" {
		return 0, domain.ErrInvalidArgument
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO reminders (user_id, target_user_id, reminder_text, remind_at, created_at, is_sent, chat_id)
VALUES (?, ?, ?, ?, ?, 0, ?)`,
		rem.UserID, rem.TargetUserID, rem.Text, fmtTime(rem.RemindAt), fmtTime(rem.CreatedAt), rem.ChatID)
	if err != nil {
		return 0, fmt.Errorf("add reminder: %w", err)
	}
	return res.LastInsertId()
}

func (r *ReminderRepo) Due(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, target_user_id, reminder_text, remind_at, chat_id
FROM reminders WHERE is_sent = 0 AND remind_at <= ?`, fmtTime(now))
	if err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}
	defer rows.Close()

	var out []model.Reminder
	for rows.Next() {
		var (
			rem            model.Reminder
			target, chatID sql.NullInt64
			at             string
		)
		if err := rows.Scan(&rem.ID, &rem.UserID, &target, &rem.Text, &at, &chatID); err != nil {
			return nil, err
		}
		rem.TargetUserID = target.Int64
		rem.ChatID = chatID.Int64
		rem.RemindAt = parseTime(at)
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *ReminderRepo) MarkSent(ctx context.Context, reminderID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE reminders SET is_sent = 1 WHERE id = ?`, reminderID)
	if err != nil {
		return fmt.Errorf("mark reminder %d sent: %w", reminderID, err)
	}
	return nil
}
