package constants

import "time"

// Context keys
const (
	ContextKeyUserID      = "user_id"
	ContextKeyMemberships = "memberships"
)

// Authentication
const (
	MinPasswordLength = 6
	TokenExpiry       = 24 * time.Hour
	TempPasswordBytes = 9
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
