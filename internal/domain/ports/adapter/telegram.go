package adapter

import "context"

// Messenger is the slice of the Telegram API the use cases and workers
// need. The real implementation lives in internal/infra/telegram.
type Messenger interface {
	// SendText sends plain text and returns the new message ID.
	SendText(ctx context.Context, chatID int64, text string) (int, error)
	// SendTextReply sends text as a reply to an existing message.
	SendTextReply(ctx context.Context, chatID int64, replyTo int, text string) (int, error)
	// SendAnimation sends a GIF by file_id with an optional caption.
	SendAnimation(ctx context.Context, chatID int64, fileID, caption string) (int, error)
	// SendDocument uploads a named blob as a document.
	SendDocument(ctx context.Context, chatID int64, name string, data []byte, caption string) (int, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// Announcer posts operational events to the log channel. Implementations
// must degrade to a no-op when no log channel is configured.
type Announcer interface {
	Announce(ctx context.Context, text string)
}
