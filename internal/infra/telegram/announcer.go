package telegram

import (
	"context"

	"github.com/rs/zerolog"

	"santa-admin-bot/internal/domain/ports/adapter"
	"santa-admin-bot/internal/usecase"
)

var _ adapter.Announcer = (*LogChannelAnnouncer)(nil)

// LogChannelAnnouncer mirrors operational events to the configured log
// channel. A missing channel is not an error; the event still lands in
// the structured log.
type LogChannelAnnouncer struct {
	client   *Client
	settings usecase.SettingsUseCase
	log      zerolog.Logger
}

func NewLogChannelAnnouncer(client *Client, settings usecase.SettingsUseCase, log zerolog.Logger) *LogChannelAnnouncer {
	return &LogChannelAnnouncer{
		client:   client,
		settings: settings,
		log:      log.With().Str("component", "announcer").Logger(),
	}
}

func (a *LogChannelAnnouncer) Announce(ctx context.Context, text string) {
	st, err := a.settings.Current(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("settings unavailable, announcement skipped")
		return
	}
	if st.LogChannelID == 0 {
		a.log.Debug().Str("text", text).Msg("no log channel configured")
		return
	}
	if _, err := a.client.SendText(ctx, st.LogChannelID, text); err != nil {
		a.log.Warn().Err(err).Int64("chat_id", st.LogChannelID).Msg("announcement failed")
	}
}
