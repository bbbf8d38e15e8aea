package model

import "time"

// Ban keeps its row after being lifted; is_active flips instead so the
// audit trail survives.
type Ban struct {
	UserID   int64
	BannedBy int64
	Reason   string
	BannedAt time.Time
	Active   bool
}

type Mute struct {
	UserID  int64
	MutedBy int64
	Reason  string
	MutedAt time.Time
	Active  bool
}

// BlacklistEntry drops a user's messages with no feedback at all.
type BlacklistEntry struct {
	UserID  int64
	AddedBy int64
	AddedAt time.Time
	Reason  string
}

// SayBlock denies a user the /say command.
type SayBlock struct {
	UserID    int64
	BlockedBy int64
	BlockedAt time.Time
}
