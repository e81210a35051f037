package usecases

import (
	"time"

	"github.com/google/uuid"

	"secure-store-hub/internal/domain/entities"
	domainerrors "secure-store-hub/internal/domain/errors"
	"secure-store-hub/internal/domain/repositories"
)

// StoreUseCase manages stores and the JSON objects placed in them.
type StoreUseCase struct {
	stores repositories.StoreRepository
}

func NewStoreUseCase(stores repositories.StoreRepository) *StoreUseCase {
	return &StoreUseCase{stores: stores}
}

func (uc *StoreUseCase) CreateStore(name string) (*entities.Store, error) {
	return uc.stores.CreateStore(name)
}

func (uc *StoreUseCase) ListStores() ([]entities.Store, error) {
	return uc.stores.ListStores()
}

// StoreObject places a JSON blob into a store, recording the acting user.
func (uc *StoreUseCase) StoreObject(storeID int64, userName, jsonBlob string) (*entities.Object, error) {
	store, err := uc.stores.GetStore(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domainerrors.ErrStoreNotFound
	}

	obj := &entities.Object{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		UserName:  userName,
		JSON:      jsonBlob,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.stores.InsertObject(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (uc *StoreUseCase) ListObjects(storeID int64) ([]entities.Object, error) {
	return uc.stores.ListObjects(storeID)
}

func (uc *StoreUseCase) GetObject(storeID int64, objectID string) (*entities.Object, error) {
	return uc.stores.GetObject(storeID, objectID)
}

func (uc *StoreUseCase) DeleteObject(storeID int64, objectID string) (bool, error) {
	return uc.stores.DeleteObject(storeID, objectID)
}
