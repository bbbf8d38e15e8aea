package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/adapter"
	"santa-admin-bot/internal/domain/ports/repository"
	"santa-admin-bot/internal/logging"

	"github.com/rs/zerolog"
)

var _ ReminderUseCase = (*reminderUC)(nil)

type ReminderUseCase interface {
	// Schedule parses a duration token ("90m", "2h", "7d") and stores the
	// reminder. Returns the reminder ID and the absolute fire time.
	Schedule(ctx context.Context, userID, targetUserID int64, durationToken, text string, chatID int64) (int64, time.Time, error)
	// DeliverDue sends every due reminder and marks it sent. Returns the
	// number delivered.
	DeliverDue(ctx context.Context, now time.Time) (int, error)
}

type reminderUC struct {
	reminders repository.ReminderRepository
	bot       adapter.Messenger
	log       *zerolog.Logger
}

func NewReminderUseCase(reminders repository.ReminderRepository, bot adapter.Messenger, logger *zerolog.Logger) *reminderUC {
	return &reminderUC{reminders: reminders, bot: bot, log: logger}
}

func (u *reminderUC) Schedule(ctx context.Context, userID, targetUserID int64, durationToken, text string, chatID int64) (int64, time.Time, error) {
	defer logging.TraceDuration(u.log, "ReminderUC.Schedule")()

	d, err := ParseReminderDuration(durationToken)
	if err != nil {
		return 0, time.Time{}, err
	}
	remindAt := time.Now().Add(d)
	r, err := model.NewReminder(userID, targetUserID, text, remindAt, chatID)
	if err != nil {
		return 0, time.Time{}, err
	}
	id, err := u.reminders.Add(ctx, r)
	if err != nil {
		return 0, time.Time{}, err
	}
	return id, remindAt, nil
}

func (u *reminderUC) DeliverDue(ctx context.Context, now time.Time) (int, error) {
	due, err := u.reminders.Due(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("due reminders: %w", err)
	}

	sent := 0
	for _, r := range due {
		chatID := r.ChatID
		if chatID == 0 {
			chatID = r.TargetUserID
		}
		if chatID == 0 {
			chatID = r.UserID
		}
		text := "Нагадування: " + r.Text
		if r.TargetUserID != 0 && r.TargetUserID != r.UserID {
			text = fmt.Sprintf("Нагадування для %d: %s", r.TargetUserID, r.Text)
		}
		if _, err := u.bot.SendText(ctx, chatID, text); err != nil {
			// Leave unsent; the next tick retries.
			u.log.Error().Err(err).Int64("reminder_id", r.ID).Msg("reminder delivery failed")
			continue
		}
		if err := u.reminders.MarkSent(ctx, r.ID); err != nil {
			u.log.Error().Err(err).Int64("reminder_id", r.ID).Msg("mark sent failed")
			continue
		}
		sent++
	}
	return sent, nil
}

// ParseReminderDuration understands time.ParseDuration tokens plus a "d"
// suffix for days, which stdlib durations do not have.
func ParseReminderDuration(token string) (time.Duration, error) {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return 0, fmt.Errorf("%w: empty duration", domain.ErrInvalidArgument)
	}
	if strings.HasSuffix(token, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(token, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("%w: bad day count %q", domain.ErrInvalidArgument, token)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(token)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: bad duration %q", domain.ErrInvalidArgument, token)
	}
	return d, nil
}
