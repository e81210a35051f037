package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	domainerrors "secure-store-hub/internal/domain/errors"
)

// Argon2id parameters. m=64 MiB, t=3, p=2 exceeds the OWASP minimums.
const (
	memoryKiB   = 64 * 1024
	iterations  = 3
	parallelism = 2
	saltLength  = 16
	keyLength   = 32
)

// Hasher derives and verifies salted Argon2id digests of passwords keyed
// with a process-wide secret. The secret acts as a pepper: the plaintext is
// pre-hashed with HMAC-SHA256 under the secret before key derivation, so
// stolen hashes are useless without the deployment's secret.
//
// Safe for concurrent use.
type Hasher struct {
	secret []byte
}

// NewHasher builds a Hasher. An empty secret is allowed at construction so
// the process can start for unauthenticated endpoints; any hash or verify
// call then fails with domainerrors.ErrNoCryptoSecret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// HashPassword returns a PHC-style encoded Argon2id digest of plaintext.
// A fresh random salt is generated per call, so hashing the same plaintext
// twice yields different outputs.
func (h *Hasher) HashPassword(plaintext string) (string, error) {
	if len(h.secret) == 0 {
		return "", domainerrors.ErrNoCryptoSecret
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey(h.pepper(plaintext), salt, iterations, memoryKiB, parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryKiB, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword recomputes the digest using the salt and parameters
// embedded in encoded and compares in constant time. A malformed hash
// verifies as false without error detail, matching the uniform rejection
// policy on the authentication boundary.
func (h *Hasher) VerifyPassword(encoded, plaintext string) (bool, error) {
	if len(h.secret) == 0 {
		return false, domainerrors.ErrNoCryptoSecret
	}

	salt, want, m, t, p, err := decode(encoded)
	if err != nil {
		return false, nil
	}

	got := argon2.IDKey(h.pepper(plaintext), salt, t, m, p, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *Hasher) pepper(plaintext string) []byte {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(plaintext))
	return mac.Sum(nil)
}

func decode(encoded string) (salt, key []byte, m uint32, t uint32, p uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, fmt.Errorf("not an argon2id hash")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, nil, 0, 0, 0, err
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	return salt, key, m, t, p, nil
}
