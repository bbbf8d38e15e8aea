package model

import (
	"strings"
	"time"

	"santa-admin-bot/internal/domain"
)

// Note is a free-form annotation an owner attaches to a user.
type Note struct {
	ID                int64
	UserID            int64
	Text              string
	CreatedByID       int64
	CreatedByName     string
	CreatedByUsername string
	CreatedAt         time.Time
}

func NewNote(userID int64, text string, createdBy int64, name, username string) (*Note, error) {
	text = strings.TrimSpace(text)
	if userID == 0 || text == "" {
		return nil, domain.ErrInvalidArgument
	}
	if createdBy == 0 {
		createdBy = userID
	}
	return &Note{
		UserID:            userID,
		Text:              text,
		CreatedByID:       createdBy,
		CreatedByName:     name,
		CreatedByUsername: username,
		CreatedAt:         time.Now(),
	}, nil
}
