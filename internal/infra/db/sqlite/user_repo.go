package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	db conn
}

func NewUserRepo(s *Store) *UserRepo { return &UserRepo{db: s.conn()} }

func (r *UserRepo) Upsert(ctx context.Context, u *model.User) error {
	if u == nil || u.UserID == 0 {
		return domain.ErrInvalidArgument
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (user_id, username, full_name, first_message_at, joined_at, left_at, invited_by, invited_by_name, birth_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
	username = CASE WHEN excluded.username != '' THEN excluded.username ELSE users.username END,
	full_name = CASE WHEN excluded.full_name != '' THEN excluded.full_name ELSE users.full_name END`,
		u.UserID, u.Username, u.FullName,
		nullTime(u.FirstMessageAt), fmtTime(u.JoinedAt), nullTime(u.LeftAt),
		u.InvitedBy, u.InvitedByName, u.BirthDate)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", u.UserID, err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUser+` WHERE user_id = ?`, userID))
}

// FindByUsername mirrors the historical three-step lookup: exact, with a
// stored leading @, then substring.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, domain.ErrInvalidArgument
	}
	u, err := r.scanOne(r.db.QueryRowContext(ctx,
		selectUser+` WHERE LOWER(username) = LOWER(?)`, username))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	u, err = r.scanOne(r.db.QueryRowContext(ctx,
		selectUser+` WHERE LOWER(username) = LOWER(?)`, "@"+username))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return r.scanOne(r.db.QueryRowContext(ctx,
		selectUser+` WHERE LOWER(username) LIKE LOWER(?) LIMIT 1`, "%"+username+"%"))
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE user_id > 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

const selectUser = `
SELECT user_id, username, full_name, first_message_at, joined_at, left_at, invited_by, invited_by_name, birth_date
FROM users`

func (r *UserRepo) scanOne(row *sql.Row) (*model.User, error) {
	var (
		u                       model.User
		username, fullName      sql.NullString
		firstMsg, joined, left  sql.NullString
		invitedBy               sql.NullInt64
		invitedByName, birthday sql.NullString
	)
	err := row.Scan(&u.UserID, &username, &fullName, &firstMsg, &joined, &left, &invitedBy, &invitedByName, &birthday)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Username = username.String
	u.FullName = fullName.String
	if firstMsg.Valid && firstMsg.String != "" {
		t := parseTime(firstMsg.String)
		u.FirstMessageAt = &t
	}
	if joined.Valid {
		u.JoinedAt = parseTime(joined.String)
	}
	if left.Valid && left.String != "" {
		t := parseTime(left.String)
		u.LeftAt = &t
	}
	u.InvitedBy = invitedBy.Int64
	u.InvitedByName = invitedByName.String
	u.BirthDate = birthday.String
	return &u, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}
