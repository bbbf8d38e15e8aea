package usecase

import (
	"context"
	"fmt"
	"sync"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
	"santa-admin-bot/internal/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ SettingsUseCase = (*settingsUC)(nil)

// SettingsUseCase owns the runtime-mutable wiring: relay chat IDs, the log
// and notes channels, and the service-message delete timer.
type SettingsUseCase interface {
	Current(ctx context.Context) (model.Settings, error)
	SetChatID(ctx context.Context, actor int64, key string, chatID int64) error
	SetDeleteTimer(ctx context.Context, actor int64, seconds int) error
	// Seed writes config defaults for keys never set before and primes the
	// in-memory copy. Called once at startup.
	Seed(ctx context.Context, s model.Settings) error
}

type settingsUC struct {
	repo    repository.SettingsRepository
	actions repository.ActionLogRepository
	log     *zerolog.Logger

	mu     sync.RWMutex
	cached model.Settings
	loaded bool
}

func NewSettingsUseCase(repo repository.SettingsRepository, actions repository.ActionLogRepository, logger *zerolog.Logger) *settingsUC {
	return &settingsUC{repo: repo, actions: actions, log: logger}
}

// Current serves from the in-memory copy; the relay path calls this for
// every update.
func (u *settingsUC) Current(ctx context.Context) (model.Settings, error) {
	u.mu.RLock()
	if u.loaded {
		s := u.cached
		u.mu.RUnlock()
		return s, nil
	}
	u.mu.RUnlock()
	return u.reload(ctx)
}

func (u *settingsUC) reload(ctx context.Context) (model.Settings, error) {
	s, err := u.repo.Load(ctx)
	if err != nil {
		return model.Settings{}, fmt.Errorf("reload settings: %w", err)
	}
	u.mu.Lock()
	u.cached = s
	u.loaded = true
	u.mu.Unlock()
	return s, nil
}

var chatSettingKeys = map[string]bool{
	model.SettingAdminChatID:    true,
	model.SettingUserChatID:     true,
	model.SettingLogChannelID:   true,
	model.SettingNotesChannelID: true,
	model.SettingTestChannelID:  true,
}

func (u *settingsUC) SetChatID(ctx context.Context, actor int64, key string, chatID int64) error {
	defer logging.TraceDuration(u.log, "SettingsUC.SetChatID")()
	if !chatSettingKeys[key] {
		return fmt.Errorf("%w: unknown chat setting %q", domain.ErrInvalidArgument, key)
	}
	if chatID == 0 {
		return fmt.Errorf("%w: chat id must be non-zero", domain.ErrInvalidArgument)
	}
	if err := u.repo.SetInt64(ctx, key, chatID); err != nil {
		return err
	}
	u.audit(ctx, actor, fmt.Sprintf("%s=%d", key, chatID))
	if _, err := u.reload(ctx); err != nil {
		return err
	}
	u.log.Info().Int64("actor", actor).Str("key", key).Int64("chat_id", chatID).Msg("setting changed")
	return nil
}

func (u *settingsUC) SetDeleteTimer(ctx context.Context, actor int64, seconds int) error {
	defer logging.TraceDuration(u.log, "SettingsUC.SetDeleteTimer")()
	if err := model.ValidateDeleteTimer(seconds); err != nil {
		return err
	}
	if err := u.repo.SetInt(ctx, model.SettingDeleteTimer, seconds); err != nil {
		return err
	}
	u.audit(ctx, actor, fmt.Sprintf("%s=%d", model.SettingDeleteTimer, seconds))
	if _, err := u.reload(ctx); err != nil {
		return err
	}
	u.log.Info().Int64("actor", actor).Int("seconds", seconds).Msg("delete timer changed")
	return nil
}

func (u *settingsUC) Seed(ctx context.Context, s model.Settings) error {
	if err := u.repo.Seed(ctx, s); err != nil {
		return err
	}
	_, err := u.reload(ctx)
	return err
}

func (u *settingsUC) audit(ctx context.Context, actor int64, details string) {
	err := u.actions.Append(ctx, &model.ActionLog{
		ActionType: model.ActionSettingChanged,
		UserID:     actor,
		Details:    details,
	})
	if err != nil {
		u.log.Warn().Err(err).Msg("audit append failed")
	}
}
