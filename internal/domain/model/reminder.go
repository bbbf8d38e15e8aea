package model

import (
	"strings"
	"time"

	"santa-admin-bot/internal/domain"
)

// Reminder is delivered by the reminder worker once remind_at has passed.
// TargetUserID is zero for self-reminders; ChatID is where the reminder is
// announced (zero means DM the target).
type Reminder struct {
	ID           int64
	UserID       int64
	TargetUserID int64
	Text         string
	RemindAt     time.Time
	CreatedAt    time.Time
	Sent         bool
	ChatID       int64
}

func NewReminder(userID, targetUserID int64, text string, remindAt time.Time, chatID int64) (*Reminder, error) {
	text = strings.TrimSpace(text)
	if userID == 0 || text == "" {
		return nil, domain.ErrInvalidArgument
	}
	if !remindAt.After(time.Now()) {
		return nil, domain.ErrInvalidArgument
	}
	return &Reminder{
		UserID:       userID,
		TargetUserID: targetUserID,
		Text:         text,
		RemindAt:     remindAt,
		CreatedAt:    time.Now(),
		ChatID:       chatID,
	}, nil
}
