package migration

import (
	"database/sql"
	"fmt"
	"log"
)

// migrations are applied in order; PRAGMA user_version tracks the last one
// applied. Index 0 corresponds to user_version 1.
var migrations = []string{
	// 1: unique index over users' issued raw keys, so an api_key value can
	// only ever belong to one account.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_api_key ON users(api_key) WHERE api_key != ''`,

	// 2: speed up object listing per store and author.
	`CREATE INDEX IF NOT EXISTS idx_objects_user_name ON objects(user_name)`,
}

// Apply runs pending schema migrations.
func Apply(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %v", err)
	}

	if version >= len(migrations) {
		return nil
	}

	log.Printf("Applying schema migrations %d..%d", version+1, len(migrations))
	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %v", i+1, err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %v", i+1, err)
		}
	}
	return nil
}
