package usecase

import (
	"context"
	"fmt"
	"time"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/adapter"
	"santa-admin-bot/internal/domain/ports/repository"
	"santa-admin-bot/internal/logging"

	"github.com/rs/zerolog"
)

var _ BirthdayUseCase = (*birthdayUC)(nil)

type BirthdayUseCase interface {
	Add(ctx context.Context, target *model.User, date string, addedBy int64) (string, error)
	Remove(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context) ([]model.Birthday, error)
	SetGreetingGif(ctx context.Context, fileID string) error
	SetGreetingText(ctx context.Context, text string) error
	// Preview renders the configured greeting into the test channel when
	// one is set, otherwise into fallbackChatID. Returns the chat used.
	Preview(ctx context.Context, fallbackChatID int64) (int64, error)
	// GreetToday greets every user whose DD.MM matches now, at most once
	// per user per day. Returns the number of greetings sent.
	GreetToday(ctx context.Context, now time.Time) (int, error)
}

type birthdayUC struct {
	birthdays repository.BirthdayRepository
	actions   repository.ActionLogRepository
	settings  SettingsUseCase
	bot       adapter.Messenger
	announcer adapter.Announcer
	log       *zerolog.Logger
}

func NewBirthdayUseCase(
	birthdays repository.BirthdayRepository,
	actions repository.ActionLogRepository,
	settings SettingsUseCase,
	bot adapter.Messenger,
	announcer adapter.Announcer,
	logger *zerolog.Logger,
) *birthdayUC {
	return &birthdayUC{
		birthdays: birthdays,
		actions:   actions,
		settings:  settings,
		bot:       bot,
		announcer: announcer,
		log:       logger,
	}
}

// Add validates and stores a birthday; returns the canonical date form.
func (u *birthdayUC) Add(ctx context.Context, target *model.User, date string, addedBy int64) (string, error) {
	defer logging.TraceDuration(u.log, "BirthdayUC.Add")()
	if target == nil || target.UserID == 0 {
		return "", domain.ErrInvalidArgument
	}
	canonical, err := model.NormalizeBirthDate(date)
	if err != nil {
		return "", err
	}
	err = u.birthdays.Upsert(ctx, &model.Birthday{
		UserID:   target.UserID,
		Username: target.Username,
		FullName: target.FullName,
		Date:     canonical,
		AddedBy:  addedBy,
	})
	if err != nil {
		return "", err
	}
	return canonical, nil
}

func (u *birthdayUC) Remove(ctx context.Context, userID int64) (bool, error) {
	return u.birthdays.Delete(ctx, userID)
}

func (u *birthdayUC) List(ctx context.Context) ([]model.Birthday, error) {
	return u.birthdays.All(ctx)
}

func (u *birthdayUC) SetGreetingGif(ctx context.Context, fileID string) error {
	if fileID == "" {
		return domain.ErrInvalidArgument
	}
	return u.birthdays.SetGreetingGif(ctx, fileID)
}

func (u *birthdayUC) SetGreetingText(ctx context.Context, text string) error {
	if text == "" {
		return domain.ErrInvalidArgument
	}
	return u.birthdays.SetGreetingText(ctx, text)
}

func (u *birthdayUC) Preview(ctx context.Context, fallbackChatID int64) (int64, error) {
	s, err := u.settings.Current(ctx)
	if err != nil {
		return 0, err
	}
	chatID := fallbackChatID
	if s.TestChannelID != 0 {
		chatID = s.TestChannelID
	}
	gs, err := u.birthdays.Greeting(ctx)
	if err != nil {
		return 0, err
	}
	if err := u.sendGreeting(ctx, chatID, gs, ""); err != nil {
		return 0, err
	}
	return chatID, nil
}

func (u *birthdayUC) GreetToday(ctx context.Context, now time.Time) (int, error) {
	defer logging.TraceDuration(u.log, "BirthdayUC.GreetToday")()

	s, err := u.settings.Current(ctx)
	if err != nil {
		return 0, err
	}
	if s.UserChatID == 0 {
		return 0, domain.ErrChatNotConfigured
	}

	todays, err := u.birthdays.ByDayMonth(ctx, model.DayMonthKey(now))
	if err != nil {
		return 0, err
	}
	if len(todays) == 0 {
		return 0, nil
	}

	gs, err := u.birthdays.Greeting(ctx)
	if err != nil {
		return 0, err
	}

	dateKey := now.Format("2006-01-02")
	sent := 0
	for _, b := range todays {
		greeted, err := u.actions.Exists(ctx, model.ActionBirthdayGreeted, b.UserID, dateKey)
		if err != nil {
			return sent, err
		}
		if greeted {
			continue
		}

		mention := b.FullName
		if mention == "" && b.Username != "" {
			mention = "@" + b.Username
		}
		if err := u.sendGreeting(ctx, s.UserChatID, gs, mention); err != nil {
			u.log.Error().Err(err).Int64("user_id", b.UserID).Msg("birthday greeting failed")
			continue
		}
		if err := u.actions.Append(ctx, &model.ActionLog{
			ActionType:   model.ActionBirthdayGreeted,
			TargetUserID: b.UserID,
			Details:      dateKey,
		}); err != nil {
			u.log.Warn().Err(err).Msg("audit append failed")
		}
		u.announcer.Announce(ctx, fmt.Sprintf("birthday greeting sent for user %d (%s)", b.UserID, b.Date))
		sent++
	}
	return sent, nil
}

func (u *birthdayUC) sendGreeting(ctx context.Context, chatID int64, gs model.GreetingSettings, mention string) error {
	text := gs.Text()
	if mention != "" {
		text = mention + ", " + text
	}
	if gs.GifFileID != "" {
		_, err := u.bot.SendAnimation(ctx, chatID, gs.GifFileID, text)
		return err
	}
	_, err := u.bot.SendText(ctx, chatID, text)
	return err
}
