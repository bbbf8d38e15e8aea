package model

import "time"

// MessageType buckets relayed content for forwarding stats and metrics.
type MessageType string

const (
	MessageText      MessageType = "text"
	MessagePhoto     MessageType = "photo"
	MessageSticker   MessageType = "sticker"
	MessageAnimation MessageType = "animation"
	MessageDocument  MessageType = "document"
	MessageVoice     MessageType = "voice"
	MessageVideo     MessageType = "video"
	MessageOther     MessageType = "other"
)

// Direction of a relayed message.
type Direction string

const (
	AdminToUser Direction = "admin_to_user"
	UserToAdmin Direction = "user_to_admin"
)

// RelayPair correlates a message in the admin chat with its copy in the
// user chat, in either direction. Replies and deletions resolve through it.
type RelayPair struct {
	ID             int64
	AdminMessageID int
	UserMessageID  int
	CreatedAt      time.Time
}

// ForwardingStat is one successfully relayed message.
type ForwardingStat struct {
	ID          int64
	UserID      int64
	MessageType MessageType
	ForwardedAt time.Time
}
