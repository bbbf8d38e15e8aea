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

var _ repository.RelayRepository = (*RelayRepo)(nil)

type RelayRepo struct {
	db conn
}

func NewRelayRepo(s *Store) *RelayRepo { return &RelayRepo{db: s.conn()} }

func (r *RelayRepo) SaveMapping(ctx context.Context, adminMessageID, userMessageID int) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO message_mapping (admin_message_id, user_message_id, created_at)
VALUES (?, ?, ?)`, adminMessageID, userMessageID, fmtTime(time.Now()))
	if err != nil {
		return fmt.Errorf("save mapping: %w", err)
	}
	return nil
}

func (r *RelayRepo) FindByAdminMessageID(ctx context.Context, adminMessageID int) (*model.RelayPair, error) {
	return r.scanPair(r.db.QueryRowContext(ctx, selectPair+` WHERE admin_message_id = ? ORDER BY id DESC LIMIT 1`, adminMessageID))
}

func (r *RelayRepo) FindByUserMessageID(ctx context.Context, userMessageID int) (*model.RelayPair, error) {
	return r.scanPair(r.db.QueryRowContext(ctx, selectPair+` WHERE user_message_id = ? ORDER BY id DESC LIMIT 1`, userMessageID))
}

func (r *RelayRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM message_mapping WHERE created_at < ?`, fmtTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune mappings: %w", err)
	}
	return res.RowsAffected()
}

func (r *RelayRepo) RecordForward(ctx context.Context, userID int64, mt model.MessageType) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO forwarding_stats (user_id, message_type, forwarded_at)
VALUES (?, ?, ?)`, userID, string(mt), fmtTime(time.Now()))
	if err != nil {
		return fmt.Errorf("record forward: %w", err)
	}
	return nil
}

func (r *RelayRepo) CountForwardsByType(ctx context.Context) (map[model.MessageType]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT message_type, COUNT(*) FROM forwarding_stats GROUP BY message_type`)
	if err != nil {
		return nil, fmt.Errorf("count forwards: %w", err)
	}
	defer rows.Close()

	out := make(map[model.MessageType]int)
	for rows.Next() {
		var (
			mt string
			n  int
		)
		if err := rows.Scan(&mt, &n); err != nil {
			return nil, err
		}
		out[model.MessageType(mt)] = n
	}
	return out, rows.Err()
}

const selectPair = `
SELECT id, admin_message_id, user_message_id, created_at FROM message_mapping`

func (r *RelayRepo) scanPair(row *sql.Row) (*model.RelayPair, error) {
	var (
		p  model.RelayPair
		at string
	)
	err := row.Scan(&p.ID, &p.AdminMessageID, &p.UserMessageID, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = parseTime(at)
	return &p, nil
}
