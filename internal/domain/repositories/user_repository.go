package repositories

import "secure-store-hub/internal/domain/entities"

// UserRepository persists user and credential records. A user and its
// credential form one aggregate: they are created and deleted inside one
// transaction so no partial state can be observed.
type UserRepository interface {
	// Create inserts the user and its credential together. Returns
	// domainerrors.ErrDuplicateUser when the user name is taken.
	Create(user *entities.User, passwordHash string) error

	// CreateFirst behaves like Create but only succeeds while the users
	// table is empty; created is false when any user already exists. The
	// check and the inserts share one transaction.
	CreateFirst(user *entities.User, passwordHash string) (created bool, err error)

	// Get returns nil (not an error) when the user does not exist.
	Get(userName string) (*entities.User, error)

	// GetByAPIKey resolves the user that was issued the given raw key.
	GetByAPIKey(rawKey string) (*entities.User, error)

	List() ([]entities.User, error)

	// Update rewrites role and display name; updated is false for unknown
	// users.
	Update(userName string, role entities.Role, displayName string) (updated bool, err error)

	// Delete removes the user, its credential and its api-key record (by
	// fingerprint) in one transaction; deleted is false for unknown users.
	Delete(userName, keyFingerprint string) (deleted bool, err error)

	// GetCredential returns nil (not an error) when no credential exists.
	GetCredential(userName string) (*entities.Credential, error)

	// UpdateCredential replaces the stored password hash; changed is the
	// number of rows the store reports as modified.
	UpdateCredential(userName, passwordHash string) (changed int64, err error)

	Count() (int64, error)
}
