//go:build !integration

package model_test

import (
	"errors"
	"testing"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
)

func TestValidateDeleteTimer(t *testing.T) {
	for _, ok := range []int{1, 30, 60} {
		if err := model.ValidateDeleteTimer(ok); err != nil {
			t.Errorf("%d: unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []int{0, -5, 61, 3600} {
		if err := model.ValidateDeleteTimer(bad); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("%d: expected ErrInvalidArgument, got: %v", bad, err)
		}
	}
}

func TestSettingsRelayConfigured(t *testing.T) {
	if (model.Settings{}).RelayConfigured() {
		t.Error("empty settings must not count as configured")
	}
	if (model.Settings{AdminChatID: -1}).RelayConfigured() {
		t.Error("one chat is not enough")
	}
	if !(model.Settings{AdminChatID: -1, UserChatID: -2}).RelayConfigured() {
		t.Error("both chats set must count as configured")
	}
}

func TestSettingsChatID(t *testing.T) {
	s := model.Settings{
		AdminChatID:   -1,
		UserChatID:    -2,
		LogChannelID:  -3,
		TestChannelID: -5,
	}
	cases := []struct {
		key  string
		want int64
	}{
		{model.SettingAdminChatID, -1},
		{model.SettingUserChatID, -2},
		{model.SettingLogChannelID, -3},
		{model.SettingNotesChannelID, 0},
		{model.SettingTestChannelID, -5},
		{model.SettingDeleteTimer, 0},
		{"bogus", 0},
	}
	for _, c := range cases {
		if got := s.ChatID(c.key); got != c.want {
			t.Errorf("%s: want %d, got %d", c.key, c.want, got)
		}
	}
}

func TestUserDisplayName(t *testing.T) {
	cases := []struct {
		u    model.User
		want string
	}{
		{model.User{UserID: 5, FullName: "Kate K", Username: "kate"}, "Kate K"},
		{model.User{UserID: 5, Username: "kate"}, "@kate"},
		{model.User{UserID: 5}, "id:5"},
	}
	for _, c := range cases {
		if got := c.u.DisplayName(); got != c.want {
			t.Errorf("%+v: want %q, got %q", c.u, c.want, got)
		}
	}
}
