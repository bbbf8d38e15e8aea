package model

import (
	"fmt"

	"santa-admin-bot/internal/domain"
)

// Settings keys as stored in the settings table. Values are TEXT; numeric
// settings are formatted in base 10.
const (
	SettingAdminChatID    = "admin_chat_id"
	SettingUserChatID     = "user_chat_id"
	SettingLogChannelID   = "log_channel_id"
	SettingNotesChannelID = "notes_channel_id"
	SettingTestChannelID  = "test_channel_id"
	SettingDeleteTimer    = "message_delete_timer"
)

const (
	MinDeleteTimerSeconds = 1
	MaxDeleteTimerSeconds = 60
)

// Settings is the runtime-mutable wiring of the bot: which chats it relays
// between, where it logs, and how long its own service messages live.
type Settings struct {
	AdminChatID        int64
	UserChatID         int64
	LogChannelID       int64
	NotesChannelID     int64
	TestChannelID      int64
	DeleteTimerSeconds int
}

// ValidateDeleteTimer enforces the documented 1-60 second range.
func ValidateDeleteTimer(seconds int) error {
	if seconds < MinDeleteTimerSeconds || seconds > MaxDeleteTimerSeconds {
		return fmt.Errorf("%w: delete timer must be %d-%d seconds, got %d",
			domain.ErrInvalidArgument, MinDeleteTimerSeconds, MaxDeleteTimerSeconds, seconds)
	}
	return nil
}

// RelayConfigured reports whether both ends of the relay are set.
func (s Settings) RelayConfigured() bool {
	return s.AdminChatID != 0 && s.UserChatID != 0
}

// ChatID returns the stored chat ID for one of the chat setting keys,
// zero when the key is unset or not a chat key.
func (s Settings) ChatID(key string) int64 {
	switch key {
	case SettingAdminChatID:
		return s.AdminChatID
	case SettingUserChatID:
		return s.UserChatID
	case SettingLogChannelID:
		return s.LogChannelID
	case SettingNotesChannelID:
		return s.NotesChannelID
	case SettingTestChannelID:
		return s.TestChannelID
	default:
		return 0
	}
}
