package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
)

var _ repository.ModerationRepository = (*ModerationRepo)(nil)

type ModerationRepo struct {
	db conn
}

func NewModerationRepo(s *Store) *ModerationRepo { return &ModerationRepo{db: s.conn()} }

func (r *ModerationRepo) Ban(ctx context.Context, b *model.Ban) error {
	if b == nil || b.UserID == 0 {
		return domain.ErrInvalidArgument
	}
	at := b.BannedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO bans (user_id, banned_by, reason, banned_at, is_active)
VALUES (?, ?, ?, ?, 1)`, b.UserID, b.BannedBy, b.Reason, fmtTime(at))
	if err != nil {
		return fmt.Errorf("ban %d: %w", b.UserID, err)
	}
	return nil
}

func (r *ModerationRepo) Unban(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE bans SET is_active = 0 WHERE user_id = ?`, userID)
	return err
}

func (r *ModerationRepo) IsBanned(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM bans WHERE user_id = ? AND is_active = 1`, userID)
}

func (r *ModerationRepo) Mute(ctx context.Context, m *model.Mute) error {
	if m == nil || m.UserID == 0 {
		return domain.ErrInvalidArgument
	}
	at := m.MutedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO mutes (user_id, muted_by, reason, muted_at, is_active)
VALUES (?, ?, ?, ?, 1)`, m.UserID, m.MutedBy, m.Reason, fmtTime(at))
	if err != nil {
		return fmt.Errorf("mute %d: %w", m.UserID, err)
	}
	return nil
}

func (r *ModerationRepo) Unmute(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE mutes SET is_active = 0 WHERE user_id = ?`, userID)
	return err
}

func (r *ModerationRepo) IsMuted(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM mutes WHERE user_id = ? AND is_active = 1`, userID)
}

func (r *ModerationRepo) AddToBlacklist(ctx context.Context, e *model.BlacklistEntry) error {
	if e == nil || e.UserID == 0 {
		return domain.ErrInvalidArgument
	}
	at := e.AddedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO blacklist (user_id, added_by, added_at, reason)
VALUES (?, ?, ?, ?)`, e.UserID, e.AddedBy, fmtTime(at), e.Reason)
	if err != nil {
		return fmt.Errorf("blacklist %d: %w", e.UserID, err)
	}
	return nil
}

func (r *ModerationRepo) IsBlacklisted(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM blacklist WHERE user_id = ?`, userID)
}

func (r *ModerationRepo) BlockSay(ctx context.Context, b *model.SayBlock) error {
	if b == nil || b.UserID == 0 {
		return domain.ErrInvalidArgument
	}
	at := b.BlockedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO say_blocks (user_id, blocked_by, blocked_at)
VALUES (?, ?, ?)`, b.UserID, b.BlockedBy, fmtTime(at))
	return err
}

func (r *ModerationRepo) UnblockSay(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM say_blocks WHERE user_id = ?`, userID)
	return err
}

func (r *ModerationRepo) IsSayBlocked(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM say_blocks WHERE user_id = ?`, userID)
}

func (r *ModerationRepo) CountActiveBans(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM bans WHERE is_active = 1`)
}

func (r *ModerationRepo) CountActiveMutes(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM mutes WHERE is_active = 1`)
}

func (r *ModerationRepo) exists(ctx context.Context, q string, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ModerationRepo) count(ctx context.Context, q string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
