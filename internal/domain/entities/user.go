package entities

import "time"

// User is an account record. ApiKey holds the raw key issued to the user at
// creation so the user can retrieve it again; the key registry only ever
// sees its fingerprint.
type User struct {
	UserName     string    `json:"userName"`
	DisplayName  string    `json:"displayName"`
	Role         Role      `json:"role"`
	ApiKey       string    `json:"apiKey"`
	CreatedAtUTC time.Time `json:"createdAtUtc"`
}

// Exists reports whether the record describes a real user. Lookups for
// unknown users return an empty placeholder instead of an error.
func (u User) Exists() bool { return u.UserName != "" }

// Credential is the password record paired 1:1 with a User by user name.
// PasswordHash is the opaque output of the secret hasher and embeds its own
// salt and parameters.
type Credential struct {
	UserName     string
	PasswordHash string
}
