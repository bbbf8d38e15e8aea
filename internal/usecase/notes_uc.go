package usecase

import (
	"context"
	"fmt"

	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/adapter"
	"santa-admin-bot/internal/domain/ports/repository"
	"santa-admin-bot/internal/logging"

	"github.com/rs/zerolog"
)

var _ NotesUseCase = (*notesUC)(nil)

type NotesUseCase interface {
	Add(ctx context.Context, targetID int64, text string, author *model.User) (int64, error)
	List(ctx context.Context, targetID int64) ([]model.Note, error)
	Delete(ctx context.Context, noteID int64) (bool, error)
}

type notesUC struct {
	notes    repository.NoteRepository
	settings SettingsUseCase
	bot      adapter.Messenger
	log      *zerolog.Logger
}

func NewNotesUseCase(notes repository.NoteRepository, settings SettingsUseCase, bot adapter.Messenger, logger *zerolog.Logger) *notesUC {
	return &notesUC{notes: notes, settings: settings, bot: bot, log: logger}
}

// Add stores the note and mirrors it to the notes channel when one is
// configured.
func (u *notesUC) Add(ctx context.Context, targetID int64, text string, author *model.User) (int64, error) {
	defer logging.TraceDuration(u.log, "NotesUC.Add")()

	var authorID int64
	var name, username string
	if author != nil {
		authorID, name, username = author.UserID, author.FullName, author.Username
	}
	note, err := model.NewNote(targetID, text, authorID, name, username)
	if err != nil {
		return 0, err
	}
	id, err := u.notes.Add(ctx, note)
	if err != nil {
		return 0, err
	}

	if s, err := u.settings.Current(ctx); err == nil && s.NotesChannelID != 0 {
		mirror := fmt.Sprintf("note #%d for user %d by %s:\n%s", id, targetID, note.CreatedByName, note.Text)
		if _, err := u.bot.SendText(ctx, s.NotesChannelID, mirror); err != nil {
			u.log.Warn().Err(err).Msg("notes channel mirror failed")
		}
	}
	return id, nil
}

func (u *notesUC) List(ctx context.Context, targetID int64) ([]model.Note, error) {
	return u.notes.ListByUser(ctx, targetID)
}

func (u *notesUC) Delete(ctx context.Context, noteID int64) (bool, error) {
	return u.notes.Delete(ctx, noteID)
}
