package sqlite

import (
	dbpkg "secure-store-hub/internal/database"
	"secure-store-hub/internal/domain/entities"
	"secure-store-hub/internal/domain/repositories"
)

// StoreRepo is the SQLite-backed store/object repository.
type StoreRepo struct{}

var _ repositories.StoreRepository = (*StoreRepo)(nil)

func NewStoreRepo() *StoreRepo { return &StoreRepo{} }

func mapStore(s *dbpkg.StoreRecord) *entities.Store {
	if s == nil {
		return nil
	}
	return &entities.Store{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}
}

func mapObject(o *dbpkg.ObjectRecord) *entities.Object {
	if o == nil {
		return nil
	}
	return &entities.Object{
		ID:        o.ID,
		StoreID:   o.StoreID,
		UserName:  o.UserName,
		JSON:      o.JSON,
		CreatedAt: o.CreatedAt,
	}
}

func (r *StoreRepo) CreateStore(name string) (*entities.Store, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	s, err := db.CreateStore(name)
	if err != nil {
		return nil, err
	}
	return mapStore(s), nil
}

func (r *StoreRepo) ListStores() ([]entities.Store, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	ss, err := db.GetAllStores()
	if err != nil {
		return nil, err
	}
	out := make([]entities.Store, 0, len(ss))
	for i := range ss {
		out = append(out, *mapStore(&ss[i]))
	}
	return out, nil
}

func (r *StoreRepo) GetStore(storeID int64) (*entities.Store, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	s, err := db.GetStore(storeID)
	if err != nil {
		return nil, err
	}
	return mapStore(s), nil
}

func (r *StoreRepo) InsertObject(obj *entities.Object) error {
	db := dbpkg.GetDatabase()
	if db == nil {
		return ErrDBUnavailable
	}
	return db.InsertObject(&dbpkg.ObjectRecord{
		ID:        obj.ID,
		StoreID:   obj.StoreID,
		UserName:  obj.UserName,
		JSON:      obj.JSON,
		CreatedAt: obj.CreatedAt,
	})
}

func (r *StoreRepo) ListObjects(storeID int64) ([]entities.Object, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	os, err := db.GetObjectsByStore(storeID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Object, 0, len(os))
	for i := range os {
		out = append(out, *mapObject(&os[i]))
	}
	return out, nil
}

func (r *StoreRepo) GetObject(storeID int64, objectID string) (*entities.Object, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return nil, ErrDBUnavailable
	}
	o, err := db.GetObject(storeID, objectID)
	if err != nil {
		return nil, err
	}
	return mapObject(o), nil
}

func (r *StoreRepo) DeleteObject(storeID int64, objectID string) (bool, error) {
	db := dbpkg.GetDatabase()
	if db == nil {
		return false, ErrDBUnavailable
	}
	return db.DeleteObject(storeID, objectID)
}
