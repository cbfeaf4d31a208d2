package constants

import "time"

// Context keys set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// Validation limits mirrored in the request binding tags.
const (
	MinNameLength     = 3
	MinPasswordLength = 6
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 7 * 24 * time.Hour
