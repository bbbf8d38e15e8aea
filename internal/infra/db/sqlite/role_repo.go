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

var _ repository.RoleRepository = (*RoleRepo)(nil)

type RoleRepo struct {
	db conn
}

func NewRoleRepo(s *Store) *RoleRepo { return &RoleRepo{db: s.conn()} }

func (r *RoleRepo) Set(ctx context.Context, role *model.Role) error {
	if role == nil || role.UserID == 0 || role.Role == "" {
		return domain.ErrInvalidArgument
	}
	at := role.AddedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO roles (user_id, role, added_by, added_at, full_name, username)
VALUES (?, ?, ?, ?, ?, ?)`,
		role.UserID, string(role.Role), role.AddedBy, fmtTime(at), role.FullName, role.Username)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

func (r *RoleRepo) Remove(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE user_id = ?`, userID)
	return err
}

func (r *RoleRepo) Get(ctx context.Context, userID int64) (model.RoleName, error) {
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM roles WHERE user_id = ?`, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return model.RoleName(role), nil
}

func (r *RoleRepo) ListByRole(ctx context.Context, role model.RoleName) ([]model.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, full_name, username, added_by, added_at FROM roles WHERE role = ?`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var out []model.Role
	for rows.Next() {
		var (
			m                  model.Role
			fullName, username sql.NullString
			addedAt            string
		)
		if err := rows.Scan(&m.UserID, &fullName, &username, &m.AddedBy, &addedAt); err != nil {
			return nil, err
		}
		m.Role = role
		m.FullName = fullName.String
		m.Username = username.String
		m.AddedAt = parseTime(addedAt)
		out = append(out, m)
	}
	return out, rows.Err()
}
