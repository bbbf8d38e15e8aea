package telegram

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/infra/metrics"
	"santa-admin-bot/internal/logging"
)

// handleRelay copies a non-command message to the other side of the
// relay, threading replies through the stored message-pair mapping.
func (b *Bot) handleRelay(ctx context.Context, msg *tgbotapi.Message) error {
	st, err := b.deps.Settings.Current(ctx)
	if err != nil {
		return err
	}

	var dir model.Direction
	var dstChatID int64
	switch {
	case st.AdminChatID != 0 && msg.Chat.ID == st.AdminChatID:
		dir, dstChatID = model.AdminToUser, st.UserChatID
	case st.UserChatID != 0 && msg.Chat.ID == st.UserChatID:
		dir, dstChatID = model.UserToAdmin, st.AdminChatID
	default:
		if msg.Chat.IsPrivate() {
			b.reply(ctx, msg, "Цей бот працює лише в налаштованих чатах. Команда /help покаже можливості.")
		}
		return nil
	}

	if !st.RelayConfigured() {
		metrics.IncDropped("unconfigured")
		logging.With(ctx, b.log).Warn().Str("direction", string(dir)).Msg("relay chat not configured")
		return nil
	}

	if err := b.deps.Relay.Gate(ctx, msg.From.ID); err != nil {
		return b.handleGated(ctx, msg, err)
	}

	start := time.Now()

	replyTo := 0
	if msg.ReplyToMessage != nil {
		if id, err := b.deps.Relay.ResolveReply(ctx, dir, msg.ReplyToMessage.MessageID); err == nil {
			replyTo = id
		} else if !errors.Is(err, domain.ErrNotFound) {
			logging.With(ctx, b.log).Warn().Err(err).Msg("reply resolution failed")
		}
	}

	dstMessageID, err := b.client.CopyMessage(ctx, dstChatID, msg.Chat.ID, msg.MessageID, replyTo)
	if err != nil {
		metrics.IncDropped("send_failed")
		return err
	}

	mt := classifyMessage(msg)
	if err := b.deps.Relay.RecordRelay(ctx, dir, msg.MessageID, dstMessageID, msg.From.ID, mt); err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Msg("relay record failed")
	}

	metrics.IncRelayed(string(dir), string(mt))
	metrics.ObserveRelayLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// handleGated drops a message from a restricted sender. Bans are
// announced to the sender once per process; mutes and blacklists are
// silent.
func (b *Bot) handleGated(ctx context.Context, msg *tgbotapi.Message, gateErr error) error {
	switch {
	case errors.Is(gateErr, domain.ErrBanned):
		metrics.IncDropped("banned")
		if _, seen := b.banNoticed.LoadOrStore(msg.From.ID, struct{}{}); !seen {
			b.replyEphemeral(ctx, msg, "Вас заблоковано, повідомлення не пересилаються.")
		}
	case errors.Is(gateErr, domain.ErrMuted):
		metrics.IncDropped("muted")
	case errors.Is(gateErr, domain.ErrBlacklisted):
		metrics.IncDropped("blacklisted")
	default:
		metrics.IncDropped("gate_error")
		return gateErr
	}
	logging.With(ctx, b.log).Info().Err(gateErr).Msg("message dropped")
	return nil
}

func classifyMessage(msg *tgbotapi.Message) model.MessageType {
	switch {
	case msg.Text != "":
		return model.MessageText
	case len(msg.Photo) > 0:
		return model.MessagePhoto
	case msg.Sticker != nil:
		return model.MessageSticker
	case msg.Animation != nil:
		return model.MessageAnimation
	case msg.Document != nil:
		return model.MessageDocument
	case msg.Voice != nil:
		return model.MessageVoice
	case msg.Video != nil:
		return model.MessageVideo
	default:
		return model.MessageOther
	}
}
