package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrChatNotConfigured = errors.New("chat not configured")
	ErrBanned            = errors.New("user is banned")
	ErrMuted             = errors.New("user is muted")
	ErrBlacklisted       = errors.New("user is blacklisted")
	ErrSayBlocked        = errors.New("say command blocked for user")
	ErrAlreadyExists     = errors.New("entity already exists")
)
