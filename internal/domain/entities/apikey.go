package entities

import "time"

// APIKey is the persisted record of an issued key. Only the SHA-256
// fingerprint of the raw key is stored; the raw key itself is handed to the
// caller exactly once at generation time and is never persisted or logged.
type APIKey struct {
	ID          int64
	Fingerprint string
	Role        Role
	CreatedAt   time.Time
}
