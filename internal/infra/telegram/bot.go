package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"santa-admin-bot/internal/config"
	"santa-admin-bot/internal/domain/ports/adapter"
	"santa-admin-bot/internal/domain/ports/repository"
	"santa-admin-bot/internal/logging"
	"santa-admin-bot/internal/usecase"
)

// Deps bundles the use cases the update handlers dispatch into.
type Deps struct {
	Settings   usecase.SettingsUseCase
	Access     usecase.AccessUseCase
	Users      usecase.UserUseCase
	Relay      usecase.RelayUseCase
	Moderation usecase.ModerationUseCase
	Notes      usecase.NotesUseCase
	Reminders  usecase.ReminderUseCase
	Birthdays  usecase.BirthdayUseCase
	Stats      usecase.StatsUseCase
	Backups    usecase.BackupUseCase

	Actions   repository.ActionLogRepository
	Announcer adapter.Announcer
}

// sender is the outbound surface the handlers go through.
type sender interface {
	SendText(ctx context.Context, chatID int64, text string) (int, error)
	SendTextReply(ctx context.Context, chatID int64, replyTo int, text string) (int, error)
	SendDocument(ctx context.Context, chatID int64, name string, data []byte, caption string) (int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID, replyTo int) (int, error)
}

// Bot polls Telegram for updates and fans them out to a pool of workers.
type Bot struct {
	api    *tgbotapi.BotAPI
	client sender
	cfg    *config.Config
	deps   Deps
	log    *zerolog.Logger

	updateWorkers int
	cancelPolling context.CancelFunc

	// one ban notice per sender per process
	banNoticed sync.Map
}

func NewBot(api *tgbotapi.BotAPI, client *Client, cfg *config.Config, deps Deps, logger *zerolog.Logger) (*Bot, error) {
	if api == nil {
		return nil, errors.New("bot api is nil")
	}
	if client == nil {
		return nil, errors.New("client is nil")
	}
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	workers := cfg.Bot.Workers
	if workers <= 0 {
		workers = 8
	}
	l := logger.With().Str("component", "telegram").Logger()
	return &Bot{
		api:           api,
		client:        client,
		cfg:           cfg,
		deps:          deps,
		log:           &l,
		updateWorkers: workers,
	}, nil
}

// Username returns the bot's own @handle as reported by getMe.
func (b *Bot) Username() string { return b.api.Self.UserName }

// StartPolling runs long polling until ctx is canceled. Updates are fed
// through a buffered channel into updateWorkers goroutines so one slow
// handler does not stall the poll loop.
func (b *Bot) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	b.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < b.updateWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-updateChan:
					if !ok {
						return
					}
					if err := b.handleUpdate(ctx, update); err != nil {
						b.log.Error().Err(err).Int("worker", workerID).Msg("update failed")
					}
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	go func() {
		defer close(updateChan)
		for {
			select {
			case update := <-updates:
				select {
				case updateChan <- update:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	b.log.Info().Int("workers", b.updateWorkers).Str("bot", b.api.Self.UserName).Msg("polling started")
	<-ctx.Done()
	b.api.StopReceivingUpdates()
	wg.Wait()
	return ctx.Err()
}

// Stop cancels polling; StartPolling returns after in-flight updates drain.
func (b *Bot) Stop() {
	if b.cancelPolling != nil {
		b.cancelPolling()
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithTgID(ctx, msg.From.ID)
	ctx = logging.WithChatID(ctx, msg.Chat.ID)

	if !msg.From.IsBot {
		if err := b.deps.Users.Observe(ctx, msg.From.ID, msg.From.UserName, senderName(msg.From)); err != nil {
			logging.With(ctx, b.log).Warn().Err(err).Msg("observe sender")
		}
	}

	if msg.IsCommand() {
		return b.handleCommand(ctx, msg)
	}
	return b.handleRelay(ctx, msg)
}

// replyEphemeral answers a message and removes the answer after the
// configured delete timer, keeping service chatter out of the relay chats.
func (b *Bot) replyEphemeral(ctx context.Context, msg *tgbotapi.Message, text string) {
	id, err := b.client.SendTextReply(ctx, msg.Chat.ID, msg.MessageID, text)
	if err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Msg("ephemeral reply failed")
		return
	}
	b.scheduleDelete(msg.Chat.ID, id)
}

// reply answers a message and leaves the answer in place.
func (b *Bot) reply(ctx context.Context, msg *tgbotapi.Message, text string) {
	if _, err := b.client.SendTextReply(ctx, msg.Chat.ID, msg.MessageID, text); err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Msg("reply failed")
	}
}

func (b *Bot) scheduleDelete(chatID int64, messageID int) {
	st, err := b.deps.Settings.Current(context.Background())
	if err != nil {
		return
	}
	d := time.Duration(st.DeleteTimerSeconds) * time.Second
	time.AfterFunc(d, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := b.client.DeleteMessage(ctx, chatID, messageID); err != nil {
			b.log.Debug().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("delete failed")
		}
	})
}

func senderName(u *tgbotapi.User) string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}
