package repository

import (
	"context"

	"santa-admin-bot/internal/domain/model"
)

type NoteRepository interface {
	Add(ctx context.Context, n *model.Note) (int64, error)
	// ListByUser returns notes newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Note, error)
	Delete(ctx context.Context, noteID int64) (bool, error)
}
