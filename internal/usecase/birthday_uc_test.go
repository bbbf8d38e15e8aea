//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/usecase"
)

type birthdayFixture struct {
	repo      *mockBirthdayRepo
	actions   *mockActionLogRepo
	settings  usecase.SettingsUseCase
	bot       *mockMessenger
	announcer *mockAnnouncer
	uc        usecase.BirthdayUseCase
}

func newBirthdayFixture(t *testing.T, userChatID int64) *birthdayFixture {
	t.Helper()
	f := &birthdayFixture{
		repo:      newMockBirthdayRepo(),
		actions:   newMockActionLogRepo(),
		bot:       newMockMessenger(),
		announcer: &mockAnnouncer{},
	}
	settingsRepo := newMockSettingsRepo()
	f.settings = usecase.NewSettingsUseCase(settingsRepo, f.actions, newTestLogger())
	if userChatID != 0 {
		if err := f.settings.SetChatID(context.Background(), 1, model.SettingUserChatID, userChatID); err != nil {
			t.Fatalf("fixture settings: %v", err)
		}
	}
	f.uc = usecase.NewBirthdayUseCase(f.repo, f.actions, f.settings, f.bot, f.announcer, newTestLogger())
	return f
}

func TestBirthdayUseCase_Add(t *testing.T) {
	ctx := context.Background()
	f := newBirthdayFixture(t, -200)

	target := &model.User{UserID: 7, Username: "kate", FullName: "Kate"}

	canonical, err := f.uc.Add(ctx, target, "3.7.1990", 1)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if canonical != "03.07.1990" {
		t.Errorf("expected canonical 03.07.1990, got %q", canonical)
	}

	if _, err := f.uc.Add(ctx, target, "32.01", 1); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("bad date: expected ErrInvalidArgument, got: %v", err)
	}
	if _, err := f.uc.Add(ctx, nil, "01.01", 1); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("nil target: expected ErrInvalidArgument, got: %v", err)
	}
}

func TestBirthdayUseCase_GreetToday(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.July, 3, 9, 0, 0, 0, time.UTC)

	t.Run("should greet matching users once per day", func(t *testing.T) {
		f := newBirthdayFixture(t, -200)
		_, _ = f.uc.Add(ctx, &model.User{UserID: 7, FullName: "Kate"}, "03.07.1990", 1)
		_, _ = f.uc.Add(ctx, &model.User{UserID: 8, FullName: "Ivan"}, "04.07", 1)

		n, err := f.uc.GreetToday(ctx, now)
		if err != nil {
			t.Fatalf("GreetToday: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 greeting, got %d", n)
		}
		msgs := f.bot.messages()
		if len(msgs) != 1 || msgs[0].ChatID != -200 {
			t.Fatalf("expected 1 message to chat -200, got %+v", msgs)
		}
		if !strings.Contains(msgs[0].Text, "Kate") || !strings.Contains(msgs[0].Text, model.DefaultGreeting) {
			t.Errorf("greeting text missing mention or default text: %q", msgs[0].Text)
		}

		// Same day again: the audit trail suppresses the duplicate.
		n, err = f.uc.GreetToday(ctx, now.Add(30*time.Minute))
		if err != nil {
			t.Fatalf("second GreetToday: %v", err)
		}
		if n != 0 {
			t.Errorf("expected no repeat greeting, got %d", n)
		}

		// Next year greets again.
		n, err = f.uc.GreetToday(ctx, now.AddDate(1, 0, 0))
		if err != nil {
			t.Fatalf("next year GreetToday: %v", err)
		}
		if n != 1 {
			t.Errorf("expected greeting next year, got %d", n)
		}
	})

	t.Run("should use the GIF when one is configured", func(t *testing.T) {
		f := newBirthdayFixture(t, -200)
		_, _ = f.uc.Add(ctx, &model.User{UserID: 7, FullName: "Kate"}, "03.07", 1)
		if err := f.uc.SetGreetingGif(ctx, "CgAC-file"); err != nil {
			t.Fatalf("SetGreetingGif: %v", err)
		}

		if _, err := f.uc.GreetToday(ctx, now); err != nil {
			t.Fatalf("GreetToday: %v", err)
		}
		msgs := f.bot.messages()
		if len(msgs) != 1 || msgs[0].FileID != "CgAC-file" {
			t.Errorf("expected animation with file id, got %+v", msgs)
		}
	})

	t.Run("should fail when the user chat is not configured", func(t *testing.T) {
		f := newBirthdayFixture(t, 0)
		_, _ = f.uc.Add(ctx, &model.User{UserID: 7}, "03.07", 1)

		if _, err := f.uc.GreetToday(ctx, now); !errors.Is(err, domain.ErrChatNotConfigured) {
			t.Errorf("expected ErrChatNotConfigured, got: %v", err)
		}
	})
}

func TestBirthdayUseCase_Preview(t *testing.T) {
	ctx := context.Background()

	t.Run("should render into the fallback chat when no test channel is bound", func(t *testing.T) {
		f := newBirthdayFixture(t, -200)
		if err := f.uc.SetGreetingText(ctx, "Вітаємо!"); err != nil {
			t.Fatalf("SetGreetingText: %v", err)
		}

		chatID, err := f.uc.Preview(ctx, 555)
		if err != nil {
			t.Fatalf("Preview: %v", err)
		}
		if chatID != 555 {
			t.Errorf("expected fallback chat 555, got %d", chatID)
		}
		msgs := f.bot.messages()
		if len(msgs) != 1 || msgs[0].ChatID != 555 || msgs[0].Text != "Вітаємо!" {
			t.Errorf("unexpected preview message: %+v", msgs)
		}
	})

	t.Run("should prefer the bound test channel", func(t *testing.T) {
		f := newBirthdayFixture(t, -200)
		if err := f.settings.SetChatID(ctx, 1, model.SettingTestChannelID, -900); err != nil {
			t.Fatalf("bind test channel: %v", err)
		}

		chatID, err := f.uc.Preview(ctx, 555)
		if err != nil {
			t.Fatalf("Preview: %v", err)
		}
		if chatID != -900 {
			t.Errorf("expected test channel -900, got %d", chatID)
		}
		msgs := f.bot.messages()
		if len(msgs) != 1 || msgs[0].ChatID != -900 {
			t.Errorf("expected preview in test channel, got %+v", msgs)
		}
	})
}
