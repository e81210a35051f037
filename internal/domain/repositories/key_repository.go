package repositories

import "secure-store-hub/internal/domain/entities"

// KeyRepository persists API key records keyed by fingerprint.
type KeyRepository interface {
	// Insert stores a new key record and returns its row id.
	// Fingerprint uniqueness is enforced by the store.
	Insert(fingerprint string, role entities.Role) (int64, error)

	// InsertFirst inserts an Admin key record only if no key record exists.
	// The empty-table check and the insert are a single atomic statement;
	// it returns (0, false, nil) when any record already exists.
	InsertFirst(fingerprint string) (int64, bool, error)

	// GetByFingerprint returns nil (not an error) when no record matches.
	GetByFingerprint(fingerprint string) (*entities.APIKey, error)

	// Delete removes the record for a fingerprint; deleted is false when no
	// record matched.
	Delete(fingerprint string) (deleted bool, err error)

	// UpdateRole rewrites the role of the record for a fingerprint.
	UpdateRole(fingerprint string, role entities.Role) (updated bool, err error)

	Count() (int64, error)
}
