package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/ports/adapter"
	"santa-admin-bot/internal/infra/metrics"
)

// Compile-time check
var _ adapter.Messenger = (*Client)(nil)

// Client is the outbound half of the bot: plain sends with API errors
// mapped to the two operational failure modes operators actually see.
type Client struct {
	api *tgbotapi.BotAPI
}

func NewClient(api *tgbotapi.BotAPI) *Client { return &Client{api: api} }

func (c *Client) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, classifyAPIError(err)
	}
	return sent.MessageID, nil
}

func (c *Client) SendTextReply(ctx context.Context, chatID int64, replyTo int, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, classifyAPIError(err)
	}
	return sent.MessageID, nil
}

func (c *Client) SendAnimation(ctx context.Context, chatID int64, fileID, caption string) (int, error) {
	anim := tgbotapi.NewAnimation(chatID, tgbotapi.FileID(fileID))
	anim.Caption = caption
	sent, err := c.api.Send(anim)
	if err != nil {
		return 0, classifyAPIError(err)
	}
	return sent.MessageID, nil
}

func (c *Client) SendDocument(ctx context.Context, chatID int64, name string, data []byte, caption string) (int, error) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	sent, err := c.api.Send(doc)
	if err != nil {
		return 0, classifyAPIError(err)
	}
	return sent.MessageID, nil
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if _, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return classifyAPIError(err)
	}
	return nil
}

// CopyMessage copies a message between chats without the "forwarded from"
// header; replyTo of 0 means no reply threading.
func (c *Client) CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID, replyTo int) (int, error) {
	cp := tgbotapi.NewCopyMessage(toChatID, fromChatID, messageID)
	if replyTo != 0 {
		cp.ReplyToMessageID = replyTo
	}
	sent, err := c.api.CopyMessage(cp)
	if err != nil {
		return 0, classifyAPIError(err)
	}
	return sent.MessageID, nil
}

// classifyAPIError folds Telegram API failures into the documented
// operational modes and counts them.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "chat not found"):
		metrics.IncTelegramError("chat_not_found")
		return errors.Join(domain.ErrChatNotConfigured, err)
	case strings.Contains(msg, "unauthorized"):
		metrics.IncTelegramError("unauthorized")
		return err
	default:
		metrics.IncTelegramError("other")
		return err
	}
}
