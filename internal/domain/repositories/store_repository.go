package repositories

import "secure-store-hub/internal/domain/entities"

// StoreRepository persists stores and the JSON objects placed in them.
type StoreRepository interface {
	CreateStore(name string) (*entities.Store, error)
	ListStores() ([]entities.Store, error)
	GetStore(storeID int64) (*entities.Store, error)

	InsertObject(obj *entities.Object) error
	ListObjects(storeID int64) ([]entities.Object, error)
	GetObject(storeID int64, objectID string) (*entities.Object, error)
	DeleteObject(storeID int64, objectID string) (deleted bool, err error)
}
