package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

type NoteRepo struct {
	db conn
}

func NewNoteRepo(s *Store) *NoteRepo { return &NoteRepo{db: s.conn()} }

func (r *NoteRepo) Add(ctx context.Context, n *model.Note) (int64, error) {
	if n == nil || n.UserID == 0 || n.Text == "" {
		return 0, domain.ErrInvalidArgument
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO notes (user_id, note_text, created_by_id, created_by_name, created_by_username, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, n.Text, n.CreatedByID, n.CreatedByName, n.CreatedByUsername, fmtTime(n.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("add note: %w", err)
	}
	return res.LastInsertId()
}

func (r *NoteRepo) ListByUser(ctx context.Context, userID int64) ([]model.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, note_text, created_at, created_by_id, created_by_name, created_by_username
FROM notes WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var out []model.Note
	for rows.Next() {
		var (
			n              model.Note
			at             string
			name, username sql.NullString
		)
		if err := rows.Scan(&n.ID, &n.Text, &at, &n.CreatedByID, &name, &username); err != nil {
			return nil, err
		}
		n.UserID = userID
		n.CreatedAt = parseTime(at)
		n.CreatedByName = name.String
		n.CreatedByUsername = username.String
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NoteRepo) Delete(ctx context.Context, noteID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, noteID)
	if err != nil {
		return false, fmt.Errorf("delete note %d: %w", noteID, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
