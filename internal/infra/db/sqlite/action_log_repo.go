package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
)

var _ repository.ActionLogRepository = (*ActionLogRepo)(nil)

type ActionLogRepo struct {
	db conn
}

func NewActionLogRepo(s *Store) *ActionLogRepo { return &ActionLogRepo{db: s.conn()} }

func (r *ActionLogRepo) Append(ctx context.Context, a *model.ActionLog) error {
	if a == nil || a.ActionType == "" {
		return domain.ErrInvalidArgument
	}
	at := a.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO action_logs (action_type, user_id, target_user_id, details, created_at)
VALUES (?, ?, ?, ?, ?)`, a.ActionType, a.UserID, a.TargetUserID, a.Details, fmtTime(at))
	if err != nil {
		return fmt.Errorf("append action log: %w", err)
	}
	return nil
}

func (r *ActionLogRepo) Exists(ctx context.Context, actionType string, targetUserID int64, details string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM action_logs
WHERE action_type = ? AND target_user_id = ? AND details = ? LIMIT 1`,
		actionType, targetUserID, details).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
