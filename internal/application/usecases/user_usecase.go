package usecases

import (
	"strings"
	"time"
	"unicode/utf8"

	"secure-store-hub/internal/apikey"
	"secure-store-hub/internal/crypto"
	"secure-store-hub/internal/domain/entities"
	domainerrors "secure-store-hub/internal/domain/errors"
	"secure-store-hub/internal/domain/repositories"
	"secure-store-hub/internal/logger"
)

// minPasswordLength is the floor for new passwords on password change.
const minPasswordLength = 8

// UserUseCase is the user directory: account lifecycle, password changes
// and username/password authentication. Each user owns exactly one API key
// (minted at creation) and one credential record; both live and die with
// the user.
type UserUseCase struct {
	users  repositories.UserRepository
	keys   *KeyUseCase
	hasher *crypto.Hasher
}

func NewUserUseCase(users repositories.UserRepository, keys *KeyUseCase, hasher *crypto.Hasher) *UserUseCase {
	return &UserUseCase{users: users, keys: keys, hasher: hasher}
}

// CreateUser mints an API key with the requested role, hashes the password
// and persists the user together with its credential. A taken user name
// surfaces as domainerrors.ErrDuplicateUser; the freshly minted key is
// revoked again so no orphaned key record survives the failure.
func (uc *UserUseCase) CreateUser(userName string, role entities.Role, displayName, password string) (entities.User, error) {
	passwordHash, err := uc.hasher.HashPassword(password)
	if err != nil {
		return entities.User{}, err
	}

	_, rawKey, err := uc.keys.GenerateKey(role)
	if err != nil {
		return entities.User{}, err
	}

	user := entities.User{
		UserName:     userName,
		DisplayName:  displayName,
		Role:         role,
		ApiKey:       rawKey,
		CreatedAtUTC: time.Now().UTC(),
	}

	if err := uc.users.Create(&user, passwordHash); err != nil {
		_ = uc.keys.RevokeKey(rawKey)
		return entities.User{}, err
	}

	if l := logger.GetLogger(); l != nil {
		l.LogUserCreated(userName, role.String(), false)
	}
	return user, nil
}

// CreateInitialUser creates the one-time bootstrap Admin account. It fails
// with domainerrors.ErrAlreadyInitialized once any user exists; the
// emptiness check and the insert share a transaction at the store, so
// concurrent bootstrap calls produce at most one Admin account. A loser's
// pre-minted key is revoked again.
func (uc *UserUseCase) CreateInitialUser(userName, displayName, password string) (entities.User, error) {
	count, err := uc.users.Count()
	if err != nil {
		return entities.User{}, err
	}
	if count > 0 {
		return entities.User{}, domainerrors.ErrAlreadyInitialized
	}

	passwordHash, err := uc.hasher.HashPassword(password)
	if err != nil {
		return entities.User{}, err
	}

	_, rawKey, err := uc.keys.GenerateKey(entities.RoleAdmin)
	if err != nil {
		return entities.User{}, err
	}

	user := entities.User{
		UserName:     userName,
		DisplayName:  displayName,
		Role:         entities.RoleAdmin,
		ApiKey:       rawKey,
		CreatedAtUTC: time.Now().UTC(),
	}

	created, err := uc.users.CreateFirst(&user, passwordHash)
	if err != nil {
		_ = uc.keys.RevokeKey(rawKey)
		return entities.User{}, err
	}
	if !created {
		// Lost the bootstrap race.
		_ = uc.keys.RevokeKey(rawKey)
		return entities.User{}, domainerrors.ErrAlreadyInitialized
	}

	if l := logger.GetLogger(); l != nil {
		l.LogUserCreated(userName, entities.RoleAdmin.String(), true)
	}
	return user, nil
}

// UpdateUser rewrites role and display name; the role stored on the user's
// API key record follows, so the key resolves to the new role on the next
// request. Returns false for unknown users.
func (uc *UserUseCase) UpdateUser(userName string, role entities.Role, displayName string) (bool, error) {
	user, err := uc.users.Get(userName)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	updated, err := uc.users.Update(userName, role, displayName)
	if err != nil || !updated {
		return updated, err
	}

	if user.ApiKey != "" {
		if _, err := uc.keys.ReassignRole(user.ApiKey, role); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ChangePassword verifies the old password and installs a new one. The new
// password must be at least 8 characters and not blank. Returns true only
// when the store reports exactly one credential row changed.
func (uc *UserUseCase) ChangePassword(userName, oldPassword, newPassword string) (bool, error) {
	if strings.TrimSpace(newPassword) == "" || utf8.RuneCountInString(newPassword) < minPasswordLength {
		return false, nil
	}

	credential, err := uc.users.GetCredential(userName)
	if err != nil {
		return false, err
	}
	if credential == nil {
		return false, nil
	}

	ok, err := uc.hasher.VerifyPassword(credential.PasswordHash, oldPassword)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	newHash, err := uc.hasher.HashPassword(newPassword)
	if err != nil {
		return false, err
	}

	changed, err := uc.users.UpdateCredential(userName, newHash)
	if err != nil {
		return false, err
	}
	return changed == 1, nil
}

// DeleteUser removes the user, its credential and its API key record in one
// transaction, then evicts the key's cache entry. Returns false and changes
// nothing for unknown users.
func (uc *UserUseCase) DeleteUser(userName string) (bool, error) {
	user, err := uc.users.Get(userName)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	fingerprint := ""
	if user.ApiKey != "" {
		fingerprint = apikey.Fingerprint(user.ApiKey)
	}

	deleted, err := uc.users.Delete(userName, fingerprint)
	if err != nil || !deleted {
		return deleted, err
	}

	if user.ApiKey != "" {
		uc.keys.Forget(user.ApiKey)
	}

	if l := logger.GetLogger(); l != nil {
		l.LogUserDeleted(userName)
	}
	return true, nil
}

// Authenticate verifies a username/password pair. Every failure mode --
// unknown user, missing credential, wrong password -- returns the same
// empty record, so callers cannot enumerate user names.
func (uc *UserUseCase) Authenticate(userName, password string) (entities.User, error) {
	user, err := uc.users.Get(userName)
	if err != nil {
		return entities.User{}, err
	}
	if user == nil {
		return entities.User{}, nil
	}

	credential, err := uc.users.GetCredential(userName)
	if err != nil {
		return entities.User{}, err
	}
	if credential == nil {
		return entities.User{}, nil
	}

	verified, err := uc.hasher.VerifyPassword(credential.PasswordHash, password)
	if err != nil {
		return entities.User{}, err
	}
	if !verified {
		return entities.User{}, nil
	}
	return *user, nil
}

// GetUser returns an empty placeholder record for unknown users; callers
// check Exists(), not an error.
func (uc *UserUseCase) GetUser(userName string) (entities.User, error) {
	user, err := uc.users.Get(userName)
	if err != nil {
		return entities.User{}, err
	}
	if user == nil {
		return entities.User{}, nil
	}
	return *user, nil
}

// GetUsers returns all user records.
func (uc *UserUseCase) GetUsers() ([]entities.User, error) {
	return uc.users.List()
}

// GetUserByAPIKey re-derives the acting user from a presented raw key.
func (uc *UserUseCase) GetUserByAPIKey(rawKey string) (*entities.User, error) {
	return uc.users.GetByAPIKey(rawKey)
}
