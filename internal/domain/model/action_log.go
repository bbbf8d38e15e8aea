package model

import "time"

// Action types recorded in the audit trail.
const (
	ActionBan             = "ban"
	ActionUnban           = "unban"
	ActionMute            = "mute"
	ActionUnmute          = "unmute"
	ActionBlacklist       = "blacklist"
	ActionSettingChanged  = "setting_changed"
	ActionRestart         = "restart"
	ActionBirthdayGreeted = "birthday_greeted"
	ActionSay             = "say"
	ActionBackup          = "backup"
	ActionDenied          = "denied"
	ActionOwnerGranted    = "owner_granted"
	ActionOwnerRevoked    = "owner_revoked"
)

// ActionLog is one audit entry for a privileged or scheduled action.
type ActionLog struct {
	ID           int64
	ActionType   string
	UserID       int64
	TargetUserID int64
	Details      string
	CreatedAt    time.Time
}
