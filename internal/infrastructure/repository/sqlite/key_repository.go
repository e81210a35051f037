package sqlite

import (
	dbpkg "secure-store-hub/internal/database"
	"secure-store-hub/internal/domain/entities"
	"secure-store-hub/internal/domain/repositories"
)

// KeyRepo is the SQLite-backed key store.
type KeyRepo struct{}

var _ repositories.KeyRepository = (*KeyRepo)(nil)

func NewKeyRepo() *KeyRepo { return &KeyRepo{} }

func mapKey(k *dbpkg.APIKey) *entities.APIKey {
	if k == nil {
		return nil
	}
	return &entities.APIKey{
		ID:          k.ID,
		Fingerprint: k.Fingerprint,
		Role:        entities.ParseRole(k.Role),
		CreatedAt:   k.CreatedAt,
	}
}

func (r *KeyRepo) Insert(fingerprint string, role entities.Role) (int64, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return 0, ErrDBUnavailable
	}
	return db.CreateAPIKey(fingerprint, role.String())
}

func (r *KeyRepo) InsertFirst(fingerprint string) (int64, bool, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return 0, false, ErrDBUnavailable
	}
	return db.CreateFirstAPIKey(fingerprint, entities.RoleAdmin.String())
}

func (r *KeyRepo) GetByFingerprint(fingerprint string) (*entities.APIKey, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	k, err := db.GetAPIKeyByFingerprint(fingerprint)
	if err != nil {
		return nil, err
	}
	return mapKey(k), nil
}

func (r *KeyRepo) Delete(fingerprint string) (bool, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return false, ErrDBUnavailable
	}
	return db.DeleteAPIKey(fingerprint)
}

func (r *KeyRepo) UpdateRole(fingerprint string, role entities.Role) (bool, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return false, ErrDBUnavailable
	}
	return db.UpdateAPIKeyRole(fingerprint, role.String())
}

func (r *KeyRepo) Count() (int64, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return 0, ErrDBUnavailable
	}
	return db.CountAPIKeys()
}
