package di

import (
	"secure-store-hub/internal/application/usecases"
	"secure-store-hub/internal/crypto"
	"secure-store-hub/internal/domain/repositories"
	"secure-store-hub/internal/handler"
	repo "secure-store-hub/internal/infrastructure/repository/sqlite"
)

// Container provides app-wide singletons for repos/usecases/handlers.
type Container struct {
	// Repositories
	Keys   repositories.KeyRepository
	Users  repositories.UserRepository
	Stores repositories.StoreRepository

	// Usecases
	KeyUC   *usecases.KeyUseCase
	UserUC  *usecases.UserUseCase
	StoreUC *usecases.StoreUseCase

	// HTTP surface
	Handler *handler.Handler
}

// New wires the object graph. cryptoSecret may be empty; hashing then fails
// on first use rather than at startup, keeping unauthenticated endpoints up.
func New(cryptoSecret string, roleCacheSize int) (*Container, error) {
	c := &Container{
		Keys:   repo.NewKeyRepo(),
		Users:  repo.NewUserRepo(),
		Stores: repo.NewStoreRepo(),
	}

	keyUC, err := usecases.NewKeyUseCase(c.Keys, roleCacheSize)
	if err != nil {
		return nil, err
	}
	c.KeyUC = keyUC
	c.UserUC = usecases.NewUserUseCase(c.Users, c.KeyUC, crypto.NewHasher(cryptoSecret))
	c.StoreUC = usecases.NewStoreUseCase(c.Stores)

	c.Handler = handler.New(c.KeyUC, c.UserUC, c.StoreUC)
	return c, nil
}
