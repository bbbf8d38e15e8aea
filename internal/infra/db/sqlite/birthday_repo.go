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

var _ repository.BirthdayRepository = (*BirthdayRepo)(nil)

type BirthdayRepo struct {
	db conn
}

func NewBirthdayRepo(s *Store) *BirthdayRepo { return &BirthdayRepo{db: s.conn()} }

func (r *BirthdayRepo) Upsert(ctx context.Context, b *model.Birthday) error {
	if b == nil || b.UserID == 0 || b.Date == "" {
		return domain.ErrInvalidArgument
	}
	at := b.AddedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO birthdays (user_id, username, full_name, birth_date, added_by, added_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserID, b.Username, b.FullName, b.Date, b.AddedBy, fmtTime(at))
	if err != nil {
		return fmt.Errorf("upsert birthday %d: %w", b.UserID, err)
	}
	return nil
}

func (r *BirthdayRepo) Delete(ctx context.Context, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM birthdays WHERE user_id = ?`, userID)
	if err != nil {
		return false, fmt.Errorf("delete birthday %d: %w", userID, err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *BirthdayRepo) Get(ctx context.Context, userID int64) (*model.Birthday, error) {
	row := r.db.QueryRowContext(ctx, selectBirthday+` WHERE user_id = ?`, userID)
	return scanBirthday(row)
}

func (r *BirthdayRepo) All(ctx context.Context) ([]model.Birthday, error) {
	return r.query(ctx, selectBirthday+` ORDER BY birth_date`)
}

// ByDayMonth matches substr(birth_date, 1, 5) = DD.MM, same predicate the
// data has always been queried with.
func (r *BirthdayRepo) ByDayMonth(ctx context.Context, key string) ([]model.Birthday, error) {
	return r.query(ctx, selectBirthday+` WHERE substr(birth_date, 1, 5) = ?`, key)
}

func (r *BirthdayRepo) Greeting(ctx context.Context) (model.GreetingSettings, error) {
	var (
		gif      sql.NullString
		greeting sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT gif_file_id, greeting_text FROM birthday_settings WHERE id = 1`).Scan(&gif, &greeting)
	if errors.Is(err, sql.ErrNoRows) {
		return model.GreetingSettings{Greeting: model.DefaultGreeting}, nil
	}
	if err != nil {
		return model.GreetingSettings{}, err
	}
	gs := model.GreetingSettings{GifFileID: gif.String, Greeting: greeting.String}
	if gs.Greeting == "" {
		gs.Greeting = model.DefaultGreeting
	}
	return gs, nil
}

func (r *BirthdayRepo) SetGreetingGif(ctx context.Context, fileID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO birthday_settings (id, gif_file_id, greeting_text)
VALUES (1, ?, (SELECT COALESCE(greeting_text, ?) FROM birthday_settings WHERE id = 1))`,
		fileID, model.DefaultGreeting)
	if err != nil {
		return fmt.Errorf("set greeting gif: %w", err)
	}
	return r.ensureGreetingText(ctx)
}

func (r *BirthdayRepo) SetGreetingText(ctx context.Context, text string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT OR REPLACE INTO birthday_settings (id, gif_file_id, greeting_text)
VALUES (1, (SELECT gif_file_id FROM birthday_settings WHERE id = 1), ?)`, text)
	if err != nil {
		return fmt.Errorf("set greeting text: %w", err)
	}
	return nil
}

// ensureGreetingText backfills the default when the subselect above found
// no prior row and left greeting_text NULL.
func (r *BirthdayRepo) ensureGreetingText(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE birthday_settings SET greeting_text = ? WHERE id = 1 AND greeting_text IS NULL`,
		model.DefaultGreeting)
	return err
}

const selectBirthday = `
SELECT user_id, username, full_name, birth_date, added_by, added_at FROM birthdays`

func (r *BirthdayRepo) query(ctx context.Context, q string, args ...any) ([]model.Birthday, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query birthdays: %w", err)
	}
	defer rows.Close()

	var out []model.Birthday
	for rows.Next() {
		var (
			b                  model.Birthday
			username, fullName sql.NullString
			at                 string
		)
		if err := rows.Scan(&b.UserID, &username, &fullName, &b.Date, &b.AddedBy, &at); err != nil {
			return nil, err
		}
		b.Username = username.String
		b.FullName = fullName.String
		b.AddedAt = parseTime(at)
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBirthday(row *sql.Row) (*model.Birthday, error) {
	var (
		b                  model.Birthday
		username, fullName sql.NullString
		at                 string
	)
	err := row.Scan(&b.UserID, &username, &fullName, &b.Date, &b.AddedBy, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Username = username.String
	b.FullName = fullName.String
	b.AddedAt = parseTime(at)
	return &b, nil
}
