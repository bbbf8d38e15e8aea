package repository

import (
	"context"

	"santa-admin-bot/internal/domain/model"
)

// ModerationRepository covers bans, mutes, the blacklist and /say blocks.
// Lifting a ban or mute flips is_active rather than deleting the row.
type ModerationRepository interface {
	Ban(ctx context.Context, b *model.Ban) error
	Unban(ctx context.Context, userID int64) error
	IsBanned(ctx context.Context, userID int64) (bool, error)

	Mute(ctx context.Context, m *model.Mute) error
	Unmute(ctx context.Context, userID int64) error
	IsMuted(ctx context.Context, userID int64) (bool, error)

	AddToBlacklist(ctx context.Context, e *model.BlacklistEntry) error
	IsBlacklisted(ctx context.Context, userID int64) (bool, error)

	BlockSay(ctx context.Context, b *model.SayBlock) error
	UnblockSay(ctx context.Context, userID int64) error
	IsSayBlocked(ctx context.Context, userID int64) (bool, error)

	CountActiveBans(ctx context.Context) (int, error)
	CountActiveMutes(ctx context.Context) (int, error)
}
