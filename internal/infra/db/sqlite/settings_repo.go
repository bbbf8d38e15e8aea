package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

type SettingsRepo struct {
	db conn
}

func NewSettingsRepo(s *Store) *SettingsRepo { return &SettingsRepo{db: s.conn()} }

func (r *SettingsRepo) Load(ctx context.Context) (model.Settings, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return model.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	var out model.Settings
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return model.Settings{}, err
		}
		switch key {
		case model.SettingAdminChatID:
			out.AdminChatID, _ = strconv.ParseInt(value, 10, 64)
		case model.SettingUserChatID:
			out.UserChatID, _ = strconv.ParseInt(value, 10, 64)
		case model.SettingLogChannelID:
			out.LogChannelID, _ = strconv.ParseInt(value, 10, 64)
		case model.SettingNotesChannelID:
			out.NotesChannelID, _ = strconv.ParseInt(value, 10, 64)
		case model.SettingTestChannelID:
			out.TestChannelID, _ = strconv.ParseInt(value, 10, 64)
		case model.SettingDeleteTimer:
			out.DeleteTimerSeconds, _ = strconv.Atoi(value)
		}
	}
	return out, rows.Err()
}

func (r *SettingsRepo) SetInt64(ctx context.Context, key string, value int64) error {
	return r.set(ctx, key, strconv.FormatInt(value, 10))
}

func (r *SettingsRepo) SetInt(ctx context.Context, key string, value int) error {
	return r.set(ctx, key, strconv.Itoa(value))
}

func (r *SettingsRepo) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, fmtTime(time.Now()))
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Seed inserts config-provided values only for keys not yet present, so
// the database stays authoritative once an owner has changed something.
func (r *SettingsRepo) Seed(ctx context.Context, s model.Settings) error {
	seed := map[string]string{
		model.SettingAdminChatID:    strconv.FormatInt(s.AdminChatID, 10),
		model.SettingUserChatID:     strconv.FormatInt(s.UserChatID, 10),
		model.SettingLogChannelID:   strconv.FormatInt(s.LogChannelID, 10),
		model.SettingNotesChannelID: strconv.FormatInt(s.NotesChannelID, 10),
		model.SettingTestChannelID:  strconv.FormatInt(s.TestChannelID, 10),
		model.SettingDeleteTimer:    strconv.Itoa(s.DeleteTimerSeconds),
	}
	now := fmtTime(time.Now())
	for key, value := range seed {
		if value == "0" {
			continue
		}
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
			key, value, now); err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}
