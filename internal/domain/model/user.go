package model

import (
	"strconv"
	"time"

	"santa-admin-bot/internal/domain"
)

// User is everyone the bot has ever seen in the relay chats. Rows are
// upserted on each inbound message so /notes, /ban and friends can resolve
// @usernames that Telegram itself will not look up for bots.
type User struct {
	UserID         int64
	Username       string
	FullName       string
	FirstMessageAt *time.Time
	JoinedAt       time.Time
	LeftAt         *time.Time
	InvitedBy      int64
	InvitedByName  string
	BirthDate      string // DD.MM or DD.MM.YYYY, empty when unknown
}

func NewUser(userID int64, username, fullName string) (*User, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		UserID:   userID,
		Username: username,
		FullName: fullName,
		JoinedAt: time.Now(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.UserID == 0 }

// DisplayName prefers the full name, falls back to @username, then the ID.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return "@" + u.Username
	default:
		return "id:" + strconv.FormatInt(u.UserID, 10)
	}
}
