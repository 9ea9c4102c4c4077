package domain

import "time"

// AuthToken is the stored binding between a user and the hash of an opaque
// bearer token. The raw token itself is never persisted.
type AuthToken struct {
	ID        string
	TokenHash string
	UserID    string
	CreatedAt time.Time
}
