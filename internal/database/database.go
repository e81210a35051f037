package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	domainerrors "secure-store-hub/internal/domain/errors"
)

// Database manager struct
type Database struct {
	db *sql.DB
}

// APIKey is the stored form of an issued key: fingerprint only, never the
// raw key.
type APIKey struct {
	ID          int64     `json:"id"`
	Fingerprint string    `json:"-"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AppUser is a user row.
type AppUser struct {
	UserName     string    `json:"userName"`
	DisplayName  string    `json:"displayName"`
	Role         string    `json:"role"`
	ApiKey       string    `json:"apiKey"`
	CreatedAtUTC time.Time `json:"createdAtUtc"`
}

// Credential is a password-hash row, paired 1:1 with a user.
type Credential struct {
	UserName     string
	PasswordHash string
}

// StoreRecord is a named bucket of JSON objects.
type StoreRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ObjectRecord is a JSON blob placed in a store.
type ObjectRecord struct {
	ID        string    `json:"id"`
	StoreID   int64     `json:"storeId"`
	UserName  string    `json:"userName"`
	JSON      string    `json:"json"`
	CreatedAt time.Time `json:"createdAt"`
}

var defaultDB *Database

// InitDatabase initializes the database connection and creates tables
func InitDatabase(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}

	// Enable foreign keys and WAL mode for better performance
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %v", err)
	}

	// SQLite allows one writer; serialize access through a single
	// connection so write transactions never hit SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	defaultDB = &Database{db: db}

	if err := defaultDB.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %v", err)
	}

	return nil
}

// GetDatabase returns the default database instance
func GetDatabase() *Database {
	return defaultDB
}

// createTables creates all necessary database tables
func (d *Database) createTables() error {
	createKeysTable := `
	CREATE TABLE IF NOT EXISTS api_keys (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fingerprint TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_api_keys_fingerprint ON api_keys(fingerprint);
	`

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		user_name TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		api_key TEXT NOT NULL DEFAULT '',
		created_at_utc TEXT NOT NULL
	);
	`

	// Deleting a user cascades to its credential so the pair can never be
	// observed half-removed.
	createCredentialsTable := `
	CREATE TABLE IF NOT EXISTS credentials (
		user_name TEXT PRIMARY KEY REFERENCES users(user_name) ON DELETE CASCADE,
		password_hash TEXT NOT NULL
	);
	`

	createStoresTable := `
	CREATE TABLE IF NOT EXISTS stores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createObjectsTable := `
	CREATE TABLE IF NOT EXISTS objects (
		id TEXT PRIMARY KEY,
		store_id INTEGER NOT NULL REFERENCES stores(id),
		user_name TEXT NOT NULL,
		json TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_objects_store_id ON objects(store_id);
	`

	createLogsTable := `
	CREATE TABLE IF NOT EXISTS access_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		level TEXT NOT NULL,
		event_code TEXT NOT NULL,
		message TEXT NOT NULL,
		details TEXT,
		hostname TEXT NOT NULL,
		source_location TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON access_logs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_logs_event_code ON access_logs(event_code);
	`

	tables := []string{createKeysTable, createUsersTable, createCredentialsTable, createStoresTable, createObjectsTable, createLogsTable}
	for _, table := range tables {
		if _, err := d.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}

// isUniqueViolation reports whether err is a primary-key or unique-index
// constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// --- API keys ---

// CreateAPIKey inserts a key record and returns its row id.
func (d *Database) CreateAPIKey(fingerprint, role string) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO api_keys (fingerprint, role, created_at) VALUES (?, ?, ?)`,
		fingerprint, role, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domainerrors.ErrDuplicateKey
		}
		return 0, fmt.Errorf("failed to insert api key: %v", err)
	}
	return res.LastInsertId()
}

// CreateFirstAPIKey inserts an admin key record only while the api_keys
// table is empty. The emptiness check and the insert are one statement, so
// two racing bootstrap calls cannot both succeed: SQLite runs them under a
// single writer and the loser's insert matches zero rows.
func (d *Database) CreateFirstAPIKey(fingerprint, role string) (int64, bool, error) {
	res, err := d.db.Exec(
		`INSERT INTO api_keys (fingerprint, role, created_at)
		 SELECT ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM api_keys)`,
		fingerprint, role, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert first api key: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get rows affected: %v", err)
	}
	if affected == 0 {
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// GetAPIKeyByFingerprint returns nil when no key record matches.
func (d *Database) GetAPIKeyByFingerprint(fingerprint string) (*APIKey, error) {
	row := d.db.QueryRow(
		`SELECT id, fingerprint, role, created_at FROM api_keys WHERE fingerprint = ?`,
		fingerprint,
	)

	var k APIKey
	var createdAt string
	if err := row.Scan(&k.ID, &k.Fingerprint, &k.Role, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query api key: %v", err)
	}
	k.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &k, nil
}

// DeleteAPIKey removes a key record; returns false when nothing matched.
func (d *Database) DeleteAPIKey(fingerprint string) (bool, error) {
	res, err := d.db.Exec(`DELETE FROM api_keys WHERE fingerprint = ?`, fingerprint)
	if err != nil {
		return false, fmt.Errorf("failed to delete api key: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// UpdateAPIKeyRole rewrites a key record's role.
func (d *Database) UpdateAPIKeyRole(fingerprint, role string) (bool, error) {
	res, err := d.db.Exec(`UPDATE api_keys SET role = ? WHERE fingerprint = ?`, role, fingerprint)
	if err != nil {
		return false, fmt.Errorf("failed to update api key role: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CountAPIKeys returns the number of key records.
func (d *Database) CountAPIKeys() (int64, error) {
	var n int64
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM api_keys`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count api keys: %v", err)
	}
	return n, nil
}

// --- Users & credentials ---

// CreateUser inserts a user and its credential in one transaction.
func (d *Database) CreateUser(user *AppUser, passwordHash string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO users (user_name, display_name, role, api_key, created_at_utc) VALUES (?, ?, ?, ?, ?)`,
		user.UserName, user.DisplayName, user.Role, user.ApiKey,
		user.CreatedAtUTC.Format(time.RFC3339),
	); err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateUser
		}
		return fmt.Errorf("failed to insert user: %v", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO credentials (user_name, password_hash) VALUES (?, ?)`,
		user.UserName, passwordHash,
	); err != nil {
		return fmt.Errorf("failed to insert credential: %v", err)
	}

	return tx.Commit()
}

// CreateFirstUser inserts a user and credential only while the users table
// is empty; the check and the inserts share one transaction so a racing
// second bootstrap observes the committed row and loses cleanly.
func (d *Database) CreateFirstUser(user *AppUser, passwordHash string) (bool, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO users (user_name, display_name, role, api_key, created_at_utc)
		 SELECT ?, ?, ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM users)`,
		user.UserName, user.DisplayName, user.Role, user.ApiKey,
		user.CreatedAtUTC.Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert first user: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := tx.Exec(
		`INSERT INTO credentials (user_name, password_hash) VALUES (?, ?)`,
		user.UserName, passwordHash,
	); err != nil {
		return false, fmt.Errorf("failed to insert credential: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// GetUser returns nil when the user does not exist.
func (d *Database) GetUser(userName string) (*AppUser, error) {
	row := d.db.QueryRow(
		`SELECT user_name, display_name, role, api_key, created_at_utc FROM users WHERE user_name = ?`,
		userName,
	)
	return scanUser(row)
}

// GetUserByAPIKey returns the user that was issued the given raw key, or
// nil when none matches.
func (d *Database) GetUserByAPIKey(rawKey string) (*AppUser, error) {
	row := d.db.QueryRow(
		`SELECT user_name, display_name, role, api_key, created_at_utc FROM users WHERE api_key = ?`,
		rawKey,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*AppUser, error) {
	var u AppUser
	var createdAt string
	if err := row.Scan(&u.UserName, &u.DisplayName, &u.Role, &u.ApiKey, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user: %v", err)
	}
	u.CreatedAtUTC, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// GetAllUsers returns every user record.
func (d *Database) GetAllUsers() ([]AppUser, error) {
	rows, err := d.db.Query(
		`SELECT user_name, display_name, role, api_key, created_at_utc FROM users ORDER BY user_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %v", err)
	}
	defer rows.Close()

	var users []AppUser
	for rows.Next() {
		var u AppUser
		var createdAt string
		if err := rows.Scan(&u.UserName, &u.DisplayName, &u.Role, &u.ApiKey, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %v", err)
		}
		u.CreatedAtUTC, _ = time.Parse(time.RFC3339, createdAt)
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser rewrites role and display name; returns false for unknown
// users.
func (d *Database) UpdateUser(userName, role, displayName string) (bool, error) {
	res, err := d.db.Exec(
		`UPDATE users SET role = ?, display_name = ? WHERE user_name = ?`,
		role, displayName, userName,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update user: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteUser removes the user, its credential (via cascade) and its api-key
// record in one transaction: both-or-neither.
func (d *Database) DeleteUser(userName, keyFingerprint string) (bool, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM users WHERE user_name = ?`, userName)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	if keyFingerprint != "" {
		if _, err := tx.Exec(`DELETE FROM api_keys WHERE fingerprint = ?`, keyFingerprint); err != nil {
			return false, fmt.Errorf("failed to delete api key: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// GetCredential returns nil when no credential record exists.
func (d *Database) GetCredential(userName string) (*Credential, error) {
	row := d.db.QueryRow(
		`SELECT user_name, password_hash FROM credentials WHERE user_name = ?`,
		userName,
	)

	var c Credential
	if err := row.Scan(&c.UserName, &c.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query credential: %v", err)
	}
	return &c, nil
}

// UpdateCredential replaces the stored password hash and returns the number
// of rows changed.
func (d *Database) UpdateCredential(userName, passwordHash string) (int64, error) {
	res, err := d.db.Exec(
		`UPDATE credentials SET password_hash = ? WHERE user_name = ?`,
		passwordHash, userName,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update credential: %v", err)
	}
	return res.RowsAffected()
}

// CountUsers returns the number of user records.
func (d *Database) CountUsers() (int64, error) {
	var n int64
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %v", err)
	}
	return n, nil
}

// --- Stores & objects ---

// CreateStore inserts a named store.
func (d *Database) CreateStore(name string) (*StoreRecord, error) {
	now := time.Now().UTC()
	res, err := d.db.Exec(
		`INSERT INTO stores (name, created_at) VALUES (?, ?)`,
		name, now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert store: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &StoreRecord{ID: id, Name: name, CreatedAt: now}, nil
}

// GetAllStores returns every store.
func (d *Database) GetAllStores() ([]StoreRecord, error) {
	rows, err := d.db.Query(`SELECT id, name, created_at FROM stores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %v", err)
	}
	defer rows.Close()

	var stores []StoreRecord
	for rows.Next() {
		var s StoreRecord
		var createdAt string
		if err := rows.Scan(&s.ID, &s.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan store: %v", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// GetStore returns nil when the store does not exist.
func (d *Database) GetStore(storeID int64) (*StoreRecord, error) {
	row := d.db.QueryRow(`SELECT id, name, created_at FROM stores WHERE id = ?`, storeID)

	var s StoreRecord
	var createdAt string
	if err := row.Scan(&s.ID, &s.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query store: %v", err)
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &s, nil
}

// InsertObject stores a JSON blob.
func (d *Database) InsertObject(obj *ObjectRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO objects (id, store_id, user_name, json, created_at) VALUES (?, ?, ?, ?, ?)`,
		obj.ID, obj.StoreID, obj.UserName, obj.JSON, obj.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert object: %v", err)
	}
	return nil
}

// GetObjectsByStore returns the objects in a store.
func (d *Database) GetObjectsByStore(storeID int64) ([]ObjectRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, store_id, user_name, json, created_at FROM objects WHERE store_id = ? ORDER BY created_at`,
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %v", err)
	}
	defer rows.Close()

	var objects []ObjectRecord
	for rows.Next() {
		var o ObjectRecord
		var createdAt string
		if err := rows.Scan(&o.ID, &o.StoreID, &o.UserName, &o.JSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan object: %v", err)
		}
		o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		objects = append(objects, o)
	}
	return objects, rows.Err()
}

// GetObject returns nil when no object matches.
func (d *Database) GetObject(storeID int64, objectID string) (*ObjectRecord, error) {
	row := d.db.QueryRow(
		`SELECT id, store_id, user_name, json, created_at FROM objects WHERE store_id = ? AND id = ?`,
		storeID, objectID,
	)

	var o ObjectRecord
	var createdAt string
	if err := row.Scan(&o.ID, &o.StoreID, &o.UserName, &o.JSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query object: %v", err)
	}
	o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &o, nil
}

// DeleteObject removes an object; returns false when nothing matched.
func (d *Database) DeleteObject(storeID int64, objectID string) (bool, error) {
	res, err := d.db.Exec(`DELETE FROM objects WHERE store_id = ? AND id = ?`, storeID, objectID)
	if err != nil {
		return false, fmt.Errorf("failed to delete object: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetDB exposes the underlying handle for the logger and migrations.
func (d *Database) GetDB() *sql.DB {
	return d.db
}

// Close closes the database connection
func (d *Database) Close() error {
	defaultDB = nil
	return d.db.Close()
}
