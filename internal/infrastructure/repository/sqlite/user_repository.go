package sqlite

import (
	dbpkg "secure-store-hub/internal/database"
	"secure-store-hub/internal/domain/entities"
	"secure-store-hub/internal/domain/repositories"
)

// UserRepo is the SQLite-backed user and credential store.
type UserRepo struct{}

var _ repositories.UserRepository = (*UserRepo)(nil)

func NewUserRepo() *UserRepo { return &UserRepo{} }

func mapUser(u *dbpkg.AppUser) *entities.User {
	if u == nil {
		return nil
	}
	return &entities.User{
		UserName:     u.UserName,
		DisplayName:  u.DisplayName,
		Role:         entities.ParseRole(u.Role),
		ApiKey:       u.ApiKey,
		CreatedAtUTC: u.CreatedAtUTC,
	}
}

func mapAppUser(u *entities.User) *dbpkg.AppUser {
	return &dbpkg.AppUser{
		UserName:     u.UserName,
		DisplayName:  u.DisplayName,
		Role:         u.Role.String(),
		ApiKey:       u.ApiKey,
		CreatedAtUTC: u.CreatedAtUTC,
	}
}

func (r *UserRepo) Create(user *entities.User, passwordHash string) error {
	db := dbpkg.GetDatabase()
	if db == nil {
		return ErrDBUnavailable
	}
	return db.CreateUser(mapAppUser(user), passwordHash)
}

func (r *UserRepo) CreateFirst(user *entities.User, passwordHash string) (bool, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return false, ErrDBUnavailable
	}
	return db.CreateFirstUser(mapAppUser(user), passwordHash)
}

func (r *UserRepo) Get(userName string) (*entities.User, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	u, err := db.GetUser(userName)
	if err != nil {
		return nil, err
	}
	return mapUser(u), nil
}

func (r *UserRepo) GetByAPIKey(rawKey string) (*entities.User, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	u, err := db.GetUserByAPIKey(rawKey)
	if err != nil {
		return nil, err
	}
	return mapUser(u), nil
}

func (r *UserRepo) List() ([]entities.User, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	us, err := db.GetAllUsers()
	if err != nil {
		return nil, err
	}
	out := make([]entities.User, 0, len(us))
	for i := range us {
		out = append(out, *mapUser(&us[i]))
	}
	return out, nil
}

func (r *UserRepo) Update(userName string, role entities.Role, displayName string) (bool, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return false, ErrDBUnavailable
	}
	return db.UpdateUser(userName, role.String(), displayName)
}

func (r *UserRepo) Delete(userName, keyFingerprint string) (bool, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return false, ErrDBUnavailable
	}
	return db.DeleteUser(userName, keyFingerprint)
}

func (r *UserRepo) GetCredential(userName string) (*entities.Credential, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	c, err := db.GetCredential(userName)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return &entities.Credential{UserName: c.UserName, PasswordHash: c.PasswordHash}, nil
}

func (r *UserRepo) UpdateCredential(userName, passwordHash string) (int64, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return 0, ErrDBUnavailable
	}
	return db.UpdateCredential(userName, passwordHash)
}

func (r *UserRepo) Count() (int64, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return 0, ErrDBUnavailable
	}
	return db.CountUsers()
}
