package usecases

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"secure-store-hub/internal/apikey"
	"secure-store-hub/internal/domain/entities"
	"secure-store-hub/internal/domain/repositories"
	"secure-store-hub/internal/logger"
)

// DefaultRoleCacheSize bounds the fingerprint->role lookup cache.
const DefaultRoleCacheSize = 4096

// KeyUseCase issues, resolves and revokes API keys. Role lookups go through
// an LRU cache keyed by fingerprint so the request hot path avoids a store
// query per call; a cache dump therefore never contains raw keys.
//
// The cache is an explicit handle owned by this use case, not process-wide
// state. Revocation deletes from the store before evicting, so a revoke
// that has committed can never leave a stale "valid" entry behind on this
// process.
type KeyUseCase struct {
	repo  repositories.KeyRepository
	cache *lru.Cache[string, entities.Role]
}

// NewKeyUseCase builds a KeyUseCase with a cache of the given size;
// size <= 0 selects DefaultRoleCacheSize.
func NewKeyUseCase(repo repositories.KeyRepository, cacheSize int) (*KeyUseCase, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultRoleCacheSize
	}
	cache, err := lru.New[string, entities.Role](cacheSize)
	if err != nil {
		return nil, err
	}
	return &KeyUseCase{repo: repo, cache: cache}, nil
}

// GenerateKey mints a raw key, persists its fingerprint with the given role
// and returns the record id and the raw key. The raw key is returned to the
// caller exactly once and cannot be retrieved from the store afterwards.
func (uc *KeyUseCase) GenerateKey(role entities.Role) (int64, string, error) {
	rawKey, fingerprint, err := apikey.Generate()
	if err != nil {
		return 0, "", err
	}
	id, err := uc.repo.Insert(fingerprint, role)
	if err != nil {
		return 0, "", err
	}
	if l := logger.GetLogger(); l != nil {
		l.LogKeyIssued(apikey.Mask(rawKey), role.String(), false)
	}
	return id, rawKey, nil
}

// GenerateFirstKey creates the one-time bootstrap Admin key. It succeeds
// only while no key record exists; the emptiness check and the insert are
// atomic at the store, so concurrent bootstrap calls yield exactly one
// (true, key) and the rest (false, "").
func (uc *KeyUseCase) GenerateFirstKey() (bool, string, error) {
	rawKey, fingerprint, err := apikey.Generate()
	if err != nil {
		return false, "", err
	}
	_, created, err := uc.repo.InsertFirst(fingerprint)
	if err != nil {
		return false, "", err
	}
	if !created {
		return false, "", nil
	}
	if l := logger.GetLogger(); l != nil {
		l.LogKeyIssued(apikey.Mask(rawKey), entities.RoleAdmin.String(), true)
	}
	return true, rawKey, nil
}

// ResolveRole maps a presented raw key to its role. An unknown or revoked
// key resolves to RoleNone; that is a routine outcome, never an error.
// Errors are reserved for store failures.
func (uc *KeyUseCase) ResolveRole(rawKey string) (entities.Role, error) {
	fingerprint := apikey.Fingerprint(rawKey)

	if role, ok := uc.cache.Get(fingerprint); ok {
		return role, nil
	}

	record, err := uc.repo.GetByFingerprint(fingerprint)
	if err != nil {
		return entities.RoleNone, err
	}
	if record == nil {
		return entities.RoleNone, nil
	}

	uc.cache.Add(fingerprint, record.Role)
	return record.Role, nil
}

// RevokeKey deletes the key record and evicts its cache entry, in that
// order. Revoking a key that was never valid is a no-op, not an error.
func (uc *KeyUseCase) RevokeKey(rawKey string) error {
	fingerprint := apikey.Fingerprint(rawKey)

	deleted, err := uc.repo.Delete(fingerprint)
	if err != nil {
		return err
	}
	uc.cache.Remove(fingerprint)

	if l := logger.GetLogger(); l != nil {
		l.LogKeyRevoked(apikey.Mask(rawKey), deleted)
	}
	return nil
}

// ReassignRole rewrites the role stored for a key and drops the cached
// entry so the next resolution sees the new role.
func (uc *KeyUseCase) ReassignRole(rawKey string, role entities.Role) (bool, error) {
	fingerprint := apikey.Fingerprint(rawKey)

	updated, err := uc.repo.UpdateRole(fingerprint, role)
	if err != nil {
		return false, err
	}
	uc.cache.Remove(fingerprint)
	return updated, nil
}

// Forget evicts the cache entry for a raw key without touching the store.
// Used when the record was already removed inside a larger transaction.
func (uc *KeyUseCase) Forget(rawKey string) {
	uc.cache.Remove(apikey.Fingerprint(rawKey))
}
