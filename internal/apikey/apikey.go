package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const (
	// Prefix marks raw keys issued by this service.
	Prefix = "sk-"

	// KeyLength is the total length of a raw key, prefix included.
	KeyLength = 32
)

// Generate produces a new raw API key and its fingerprint.
//
// The raw key is the prefix followed by base64url-encoded random bytes,
// trimmed to KeyLength characters (about 174 bits of entropy). The
// fingerprint is the hex SHA-256 digest of the full raw key; only the
// fingerprint is ever stored.
func Generate() (rawKey, fingerprint string, err error) {
	bytes := make([]byte, 24)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawKey = (Prefix + base64.RawURLEncoding.EncodeToString(bytes))[:KeyLength]
	return rawKey, Fingerprint(rawKey), nil
}

// Fingerprint computes the fast deterministic digest of a raw key used for
// storage and lookup. A single SHA-256 pass: this sits on the request
// authentication hot path, unlike the deliberately slow password hasher.
func Fingerprint(rawKey string) string {
	sum := sha256.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

// ValidFormat reports whether a presented value is even shaped like a key
// issued here. It is a cheap pre-filter only; unknown keys still resolve to
// no role rather than an error.
func ValidFormat(key string) bool {
	if len(key) != KeyLength || key[:len(Prefix)] != Prefix {
		return false
	}
	for _, c := range key[len(Prefix):] {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// Mask renders a key for logs and display without revealing it.
func Mask(key string) string {
	if len(key) < 12 {
		return "****"
	}
	return key[:8] + "..." + key[len(key)-4:]
}
