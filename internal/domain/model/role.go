package model

import "time"

type RoleName string

const (
	RoleOwner RoleName = "owner"
	RoleAdmin RoleName = "admin"
)

// Role grants a user privileges beyond the config-seeded owner list.
type Role struct {
	UserID   int64
	Role     RoleName
	AddedBy  int64
	AddedAt  time.Time
	FullName string
	Username string
}
