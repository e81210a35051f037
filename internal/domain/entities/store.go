package entities

import "time"

// Store is a named bucket of JSON objects.
type Store struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Object is a JSON blob placed into a store. UserName records the account
// that stored it, re-derived from the presented API key.
type Object struct {
	ID        string    `json:"id"`
	StoreID   int64     `json:"storeId"`
	UserName  string    `json:"userName"`
	JSON      string    `json:"json"`
	CreatedAt time.Time `json:"createdAt"`
}
