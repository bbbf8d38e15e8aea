package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
	"santa-admin-bot/internal/logging"

	"github.com/rs/zerolog"
)

var _ RelayUseCase = (*relayUC)(nil)

// RelayUseCase is the policy side of message relaying: who may be relayed,
// how replies resolve across chats, and what gets recorded.
type RelayUseCase interface {
	// Gate returns ErrBanned, ErrMuted or ErrBlacklisted when the sender's
	// messages must not cross the relay.
	Gate(ctx context.Context, userID int64) error
	// RecordRelay stores the message-pair mapping and the forwarding stat.
	RecordRelay(ctx context.Context, dir model.Direction, srcMessageID, dstMessageID int, userID int64, mt model.MessageType) error
	// ResolveReply maps a replied-to message ID in the source chat to its
	// counterpart in the destination chat.
	ResolveReply(ctx context.Context, dir model.Direction, repliedMessageID int) (int, error)
	// PruneMappings drops relay pairs older than the retention window.
	PruneMappings(ctx context.Context, retention time.Duration) (int64, error)
	// Restart clears volatile state and records the action. The process
	// itself is restarted by the supervisor, not by us.
	Restart(ctx context.Context, actor int64) error
}

type relayUC struct {
	relay       repository.RelayRepository
	mod         repository.ModerationRepository
	actions     repository.ActionLogRepository
	maintenance repository.MaintenanceRepository
	log         *zerolog.Logger
}

func NewRelayUseCase(
	relay repository.RelayRepository,
	mod repository.ModerationRepository,
	actions repository.ActionLogRepository,
	maintenance repository.MaintenanceRepository,
	logger *zerolog.Logger,
) *relayUC {
	return &relayUC{relay: relay, mod: mod, actions: actions, maintenance: maintenance, log: logger}
}

func (u *relayUC) Gate(ctx context.Context, userID int64) error {
	blacklisted, err := u.mod.IsBlacklisted(ctx, userID)
	if err != nil {
		return fmt.Errorf("gate: %w", err)
	}
	if blacklisted {
		return domain.ErrBlacklisted
	}
	banned, err := u.mod.IsBanned(ctx, userID)
	if err != nil {
		return fmt.Errorf("gate: %w", err)
	}
	if banned {
		return domain.ErrBanned
	}
	muted, err := u.mod.IsMuted(ctx, userID)
	if err != nil {
		return fmt.Errorf("gate: %w", err)
	}
	if muted {
		return domain.ErrMuted
	}
	return nil
}

func (u *relayUC) RecordRelay(ctx context.Context, dir model.Direction, srcMessageID, dstMessageID int, userID int64, mt model.MessageType) error {
	defer logging.TraceDuration(u.log, "RelayUC.RecordRelay")()

	var adminID, userID2 int
	switch dir {
	case model.AdminToUser:
		adminID, userID2 = srcMessageID, dstMessageID
	case model.UserToAdmin:
		adminID, userID2 = dstMessageID, srcMessageID
	default:
		return fmt.Errorf("%w: direction %q", domain.ErrInvalidArgument, dir)
	}
	if err := u.relay.SaveMapping(ctx, adminID, userID2); err != nil {
		return err
	}
	if err := u.relay.RecordForward(ctx, userID, mt); err != nil {
		// Stats are best-effort; the relay already happened.
		u.log.Warn().Err(err).Msg("record forward failed")
	}
	return nil
}

func (u *relayUC) ResolveReply(ctx context.Context, dir model.Direction, repliedMessageID int) (int, error) {
	switch dir {
	case model.AdminToUser:
		pair, err := u.relay.FindByAdminMessageID(ctx, repliedMessageID)
		if err != nil {
			return 0, err
		}
		return pair.UserMessageID, nil
	case model.UserToAdmin:
		pair, err := u.relay.FindByUserMessageID(ctx, repliedMessageID)
		if err != nil {
			return 0, err
		}
		return pair.AdminMessageID, nil
	default:
		return 0, fmt.Errorf("%w: direction %q", domain.ErrInvalidArgument, dir)
	}
}

func (u *relayUC) PruneMappings(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := u.relay.PruneOlderThan(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		u.log.Info().Int64("pruned", n).Msg("relay mappings pruned")
	}
	return n, nil
}

func (u *relayUC) Restart(ctx context.Context, actor int64) error {
	cleared, err := u.maintenance.ClearOnlineModes(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("restart: %w", err)
	}
	if err := u.actions.Append(ctx, &model.ActionLog{
		ActionType: model.ActionRestart,
		UserID:     actor,
		Details:    fmt.Sprintf("cleared %d online modes", cleared),
	}); err != nil {
		u.log.Warn().Err(err).Msg("audit append failed")
	}
	u.log.Info().Int64("actor", actor).Int64("cleared", cleared).Msg("soft restart")
	return nil
}
