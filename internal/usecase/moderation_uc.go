package usecase

import (
	"context"
	"fmt"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/adapter"
	"santa-admin-bot/internal/domain/ports/repository"
	"santa-admin-bot/internal/logging"

	"github.com/rs/zerolog"
)

var _ ModerationUseCase = (*moderationUC)(nil)

type ModerationUseCase interface {
	Ban(ctx context.Context, actor, target int64, reason string) error
	Unban(ctx context.Context, actor, target int64) error
	Mute(ctx context.Context, actor, target int64, reason string) error
	Unmute(ctx context.Context, actor, target int64) error
	Blacklist(ctx context.Context, actor, target int64, reason string) error
	BlockSay(ctx context.Context, actor, target int64) error
	UnblockSay(ctx context.Context, actor, target int64) error
	IsSayBlocked(ctx context.Context, userID int64) (bool, error)
}

type moderationUC struct {
	mod       repository.ModerationRepository
	actions   repository.ActionLogRepository
	announcer adapter.Announcer
	log       *zerolog.Logger
}

func NewModerationUseCase(
	mod repository.ModerationRepository,
	actions repository.ActionLogRepository,
	announcer adapter.Announcer,
	logger *zerolog.Logger,
) *moderationUC {
	return &moderationUC{mod: mod, actions: actions, announcer: announcer, log: logger}
}

func (u *moderationUC) Ban(ctx context.Context, actor, target int64, reason string) error {
	defer logging.TraceDuration(u.log, "ModerationUC.Ban")()
	if target == 0 {
		return domain.ErrInvalidArgument
	}
	if err := u.mod.Ban(ctx, &model.Ban{UserID: target, BannedBy: actor, Reason: reason}); err != nil {
		return err
	}
	u.record(ctx, model.ActionBan, actor, target, reason)
	return nil
}

func (u *moderationUC) Unban(ctx context.Context, actor, target int64) error {
	if err := u.mod.Unban(ctx, target); err != nil {
		return err
	}
	u.record(ctx, model.ActionUnban, actor, target, "")
	return nil
}

func (u *moderationUC) Mute(ctx context.Context, actor, target int64, reason string) error {
	defer logging.TraceDuration(u.log, "ModerationUC.Mute")()
	if target == 0 {
		return domain.ErrInvalidArgument
	}
	if err := u.mod.Mute(ctx, &model.Mute{UserID: target, MutedBy: actor, Reason: reason}); err != nil {
		return err
	}
	u.record(ctx, model.ActionMute, actor, target, reason)
	return nil
}

func (u *moderationUC) Unmute(ctx context.Context, actor, target int64) error {
	if err := u.mod.Unmute(ctx, target); err != nil {
		return err
	}
	u.record(ctx, model.ActionUnmute, actor, target, "")
	return nil
}

func (u *moderationUC) Blacklist(ctx context.Context, actor, target int64, reason string) error {
	if target == 0 {
		return domain.ErrInvalidArgument
	}
	if err := u.mod.AddToBlacklist(ctx, &model.BlacklistEntry{UserID: target, AddedBy: actor, Reason: reason}); err != nil {
		return err
	}
	u.record(ctx, model.ActionBlacklist, actor, target, reason)
	return nil
}

func (u *moderationUC) BlockSay(ctx context.Context, actor, target int64) error {
	return u.mod.BlockSay(ctx, &model.SayBlock{UserID: target, BlockedBy: actor})
}

func (u *moderationUC) UnblockSay(ctx context.Context, actor, target int64) error {
	return u.mod.UnblockSay(ctx, target)
}

func (u *moderationUC) IsSayBlocked(ctx context.Context, userID int64) (bool, error) {
	return u.mod.IsSayBlocked(ctx, userID)
}

// record writes the audit row and announces the action in the log channel.
func (u *moderationUC) record(ctx context.Context, action string, actor, target int64, reason string) {
	if err := u.actions.Append(ctx, &model.ActionLog{
		ActionType:   action,
		UserID:       actor,
		TargetUserID: target,
		Details:      reason,
	}); err != nil {
		u.log.Warn().Err(err).Str("action", action).Msg("audit append failed")
	}
	text := fmt.Sprintf("%s: user %d by %d", action, target, actor)
	if reason != "" {
		text += ", reason: " + reason
	}
	u.announcer.Announce(ctx, text)
	u.log.Info().Str("action", action).Int64("actor", actor).Int64("target", target).Msg("moderation action")
}
