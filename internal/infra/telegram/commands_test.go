//go:build !integration

package telegram

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
)

type fakeSend struct {
	ChatID int64
	Text   string
}

// fakeSender records outbound calls so handler tests run without an API.
type fakeSender struct {
	mu    sync.Mutex
	sends []fakeSend
}

func (f *fakeSender) record(chatID int64, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, fakeSend{ChatID: chatID, Text: text})
}

func (f *fakeSender) sent() []fakeSend {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fakeSend, len(f.sends))
	copy(out, f.sends)
	return out
}

func (f *fakeSender) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	f.record(chatID, text)
	return 1, nil
}

func (f *fakeSender) SendTextReply(ctx context.Context, chatID int64, replyTo int, text string) (int, error) {
	f.record(chatID, text)
	return 1, nil
}

func (f *fakeSender) SendDocument(ctx context.Context, chatID int64, name string, data []byte, caption string) (int, error) {
	f.record(chatID, name)
	return 1, nil
}

func (f *fakeSender) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return nil
}

func (f *fakeSender) CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID, replyTo int) (int, error) {
	f.record(toChatID, "")
	return 2, nil
}

type stubSettings struct {
	st   model.Settings
	sets []string
}

func (s *stubSettings) Current(ctx context.Context) (model.Settings, error) { return s.st, nil }

func (s *stubSettings) SetChatID(ctx context.Context, actor int64, key string, chatID int64) error {
	s.sets = append(s.sets, key)
	return nil
}

func (s *stubSettings) SetDeleteTimer(ctx context.Context, actor int64, seconds int) error {
	return nil
}

func (s *stubSettings) Seed(ctx context.Context, st model.Settings) error { return nil }

type stubAccess struct {
	owner   bool
	granted []int64
	revoked []int64
}

func (a *stubAccess) IsOwner(ctx context.Context, userID int64) bool { return a.owner }

func (a *stubAccess) GrantOwner(ctx context.Context, actor int64, u *model.User) error {
	a.granted = append(a.granted, u.UserID)
	return nil
}

func (a *stubAccess) RevokeOwner(ctx context.Context, actor, userID int64) error {
	a.revoked = append(a.revoked, userID)
	return nil
}

type stubUsers struct{}

func (stubUsers) Observe(ctx context.Context, userID int64, username, fullName string) error {
	return nil
}

func (stubUsers) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "@kate" {
		return &model.User{UserID: 7, Username: "kate", FullName: "Kate"}, nil
	}
	return nil, domain.ErrNotFound
}

func (stubUsers) Count(ctx context.Context) (int, error) { return 0, nil }

type stubActions struct {
	entries []*model.ActionLog
}

func (a *stubActions) Append(ctx context.Context, e *model.ActionLog) error {
	a.entries = append(a.entries, e)
	return nil
}

func (a *stubActions) Exists(ctx context.Context, actionType string, targetUserID int64, details string) (bool, error) {
	return false, nil
}

func newCommandBot(settings *stubSettings, access *stubAccess) (*Bot, *fakeSender, *stubActions) {
	sender := &fakeSender{}
	actions := &stubActions{}
	l := zerolog.New(io.Discard)
	return &Bot{
		client: sender,
		deps: Deps{
			Settings: settings,
			Access:   access,
			Users:    stubUsers{},
			Actions:  actions,
		},
		log: &l,
	}, sender, actions
}

func commandMessage(chatID int64, from *tgbotapi.User, text string) *tgbotapi.Message {
	cmdLen := len(text)
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmdLen = i
	}
	return &tgbotapi.Message{
		MessageID: 10,
		From:      from,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}
}

func TestBindChatCommand(t *testing.T) {
	ctx := context.Background()
	owner := &tgbotapi.User{ID: 1, FirstName: "Owner"}

	t.Run("should report the current value without an argument", func(t *testing.T) {
		settings := &stubSettings{st: model.Settings{AdminChatID: -100, DeleteTimerSeconds: 30}}
		bot, sender, _ := newCommandBot(settings, &stubAccess{owner: true})

		if err := bot.handleCommand(ctx, commandMessage(-555, owner, "/adminchat")); err != nil {
			t.Fatalf("handleCommand: %v", err)
		}
		if len(settings.sets) != 0 {
			t.Fatalf("bare /adminchat must not write settings, wrote %v", settings.sets)
		}
		sent := sender.sent()
		if len(sent) != 1 || !strings.Contains(sent[0].Text, "-100") {
			t.Errorf("expected a reply with the stored chat ID, got %+v", sent)
		}
	})

	t.Run("should hint when the key was never bound", func(t *testing.T) {
		settings := &stubSettings{st: model.Settings{DeleteTimerSeconds: 30}}
		bot, sender, _ := newCommandBot(settings, &stubAccess{owner: true})

		if err := bot.handleCommand(ctx, commandMessage(-555, owner, "/logchannel")); err != nil {
			t.Fatalf("handleCommand: %v", err)
		}
		if len(settings.sets) != 0 {
			t.Fatalf("bare /logchannel must not write settings, wrote %v", settings.sets)
		}
		sent := sender.sent()
		if len(sent) != 1 || !strings.Contains(sent[0].Text, "/logchannel") {
			t.Errorf("expected a usage hint, got %+v", sent)
		}
	})

	t.Run("should persist an explicit chat ID", func(t *testing.T) {
		settings := &stubSettings{st: model.Settings{DeleteTimerSeconds: 30}}
		bot, sender, _ := newCommandBot(settings, &stubAccess{owner: true})

		if err := bot.handleCommand(ctx, commandMessage(-555, owner, "/userchat -200")); err != nil {
			t.Fatalf("handleCommand: %v", err)
		}
		if len(settings.sets) != 1 || settings.sets[0] != model.SettingUserChatID {
			t.Fatalf("expected one write to %s, got %v", model.SettingUserChatID, settings.sets)
		}
		sent := sender.sent()
		if len(sent) != 1 || !strings.Contains(sent[0].Text, "-200") {
			t.Errorf("expected a confirmation with the new ID, got %+v", sent)
		}
	})

	t.Run("should reject a non-numeric argument", func(t *testing.T) {
		settings := &stubSettings{st: model.Settings{DeleteTimerSeconds: 30}}
		bot, sender, _ := newCommandBot(settings, &stubAccess{owner: true})

		if err := bot.handleCommand(ctx, commandMessage(-555, owner, "/adminchat abc")); err != nil {
			t.Fatalf("handleCommand: %v", err)
		}
		if len(settings.sets) != 0 {
			t.Fatalf("bad argument must not write settings, wrote %v", settings.sets)
		}
		sent := sender.sent()
		if len(sent) != 1 || !strings.Contains(sent[0].Text, "Неправильні аргументи") {
			t.Errorf("expected an argument error reply, got %+v", sent)
		}
	})
}

func TestHelpCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("should list owner commands for owners", func(t *testing.T) {
		settings := &stubSettings{st: model.Settings{DeleteTimerSeconds: 30}}
		bot, sender, _ := newCommandBot(settings, &stubAccess{owner: true})

		if err := bot.handleCommand(ctx, commandMessage(5, &tgbotapi.User{ID: 1}, "/help")); err != nil {
			t.Fatalf("handleCommand: %v", err)
		}
		sent := sender.sent()
		if len(sent) != 1 || !strings.Contains(sent[0].Text, "/ban") {
			t.Errorf("expected the owner command list, got %+v", sent)
		}
	})

	t.Run("should keep owner commands out of the public help", func(t *testing.T) {
		settings := &stubSettings{st: model.Settings{DeleteTimerSeconds: 30}}
		bot, sender, _ := newCommandBot(settings, &stubAccess{owner: false})

		if err := bot.handleCommand(ctx, commandMessage(5, &tgbotapi.User{ID: 99}, "/help")); err != nil {
			t.Fatalf("handleCommand: %v", err)
		}
		sent := sender.sent()
		if len(sent) != 1 {
			t.Fatalf("expected one reply, got %+v", sent)
		}
		if strings.Contains(sent[0].Text, "/ban") || strings.Contains(sent[0].Text, "/backup") {
			t.Errorf("public help leaks owner commands: %q", sent[0].Text)
		}
	})
}

func TestOwnerCommands(t *testing.T) {
	ctx := context.Background()
	owner := &tgbotapi.User{ID: 1, FirstName: "Owner"}

	t.Run("should grant the owner role by handle", func(t *testing.T) {
		settings := &stubSettings{st: model.Settings{DeleteTimerSeconds: 30}}
		access := &stubAccess{owner: true}
		bot, _, actions := newCommandBot(settings, access)

		if err := bot.handleCommand(ctx, commandMessage(5, owner, "/addowner @kate")); err != nil {
			t.Fatalf("handleCommand: %v", err)
		}
		if len(access.granted) != 1 || access.granted[0] != 7 {
			t.Fatalf("expected grant for user 7, got %v", access.granted)
		}
		if len(actions.entries) != 1 || actions.entries[0].ActionType != model.ActionOwnerGranted {
			t.Errorf("expected an owner_granted audit entry, got %+v", actions.entries)
		}
	})

	t.Run("should revoke the owner role", func(t *testing.T) {
		settings := &stubSettings{st: model.Settings{DeleteTimerSeconds: 30}}
		access := &stubAccess{owner: true}
		bot, _, actions := newCommandBot(settings, access)

		if err := bot.handleCommand(ctx, commandMessage(5, owner, "/delowner @kate")); err != nil {
			t.Fatalf("handleCommand: %v", err)
		}
		if len(access.revoked) != 1 || access.revoked[0] != 7 {
			t.Fatalf("expected revoke for user 7, got %v", access.revoked)
		}
		if len(actions.entries) != 1 || actions.entries[0].ActionType != model.ActionOwnerRevoked {
			t.Errorf("expected an owner_revoked audit entry, got %+v", actions.entries)
		}
	})

	t.Run("should deny privileged commands to non-owners", func(t *testing.T) {
		settings := &stubSettings{st: model.Settings{DeleteTimerSeconds: 30}}
		bot, sender, actions := newCommandBot(settings, &stubAccess{owner: false})

		if err := bot.handleCommand(ctx, commandMessage(5, &tgbotapi.User{ID: 99}, "/addowner @kate")); err != nil {
			t.Fatalf("handleCommand: %v", err)
		}
		if len(actions.entries) != 1 || actions.entries[0].ActionType != model.ActionDenied {
			t.Fatalf("expected a denied audit entry, got %+v", actions.entries)
		}
		sent := sender.sent()
		if len(sent) != 1 || !strings.Contains(sent[0].Text, "власникам") {
			t.Errorf("expected the not-authorized reply, got %+v", sent)
		}
	})
}
