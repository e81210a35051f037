package usecases

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"secure-store-hub/internal/database"
)

// setupTestDB points the process-wide database at a fresh temp file for the
// duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDatabase(dbPath))
	t.Cleanup(func() {
		if db := database.GetDatabase(); db != nil {
			_ = db.Close()
		}
	})
}
