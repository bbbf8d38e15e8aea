package repository

import (
	"context"

	"santa-admin-bot/internal/domain/model"
)

// SettingsRepository persists the runtime-mutable bot wiring.
type SettingsRepository interface {
	// Load returns the full settings set; unset keys come back zero.
	Load(ctx context.Context) (model.Settings, error)
	// SetInt64 writes one numeric setting (chat IDs).
	SetInt64(ctx context.Context, key string, value int64) error
	// SetInt writes one small numeric setting (delete timer).
	SetInt(ctx context.Context, key string, value int) error
	// Seed writes the config-provided values for keys not yet present.
	Seed(ctx context.Context, s model.Settings) error
}
