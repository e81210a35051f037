package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "secure-store-hub/internal/domain/errors"
)

func setup(t *testing.T) *Database {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, InitDatabase(dbPath))
	db := GetDatabase()
	require.NotNil(t, db)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateAPIKey_DuplicateFingerprint(t *testing.T) {
	db := setup(t)

	_, err := db.CreateAPIKey("fp-1", "normal")
	require.NoError(t, err)

	_, err = db.CreateAPIKey("fp-1", "admin")
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateKey)
}

func TestCreateFirstAPIKey_Gate(t *testing.T) {
	db := setup(t)

	id, created, err := db.CreateFirstAPIKey("fp-1", "admin")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Positive(t, id)

	// Any existing row, bootstrap or not, closes the gate.
	_, created, err = db.CreateFirstAPIKey("fp-2", "admin")
	require.NoError(t, err)
	assert.False(t, created)

	n, err := db.CountAPIKeys()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestGetAPIKeyByFingerprint_Absent(t *testing.T) {
	db := setup(t)

	k, err := db.GetAPIKeyByFingerprint("nope")
	require.NoError(t, err)
	assert.Nil(t, k)
}

func TestCreateUser_DuplicateRollsBackCredential(t *testing.T) {
	db := setup(t)

	user := &AppUser{UserName: "alice", Role: "normal", CreatedAtUTC: time.Now().UTC()}
	require.NoError(t, db.CreateUser(user, "hash-1"))

	err := db.CreateUser(user, "hash-2")
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateUser)

	// The original credential is untouched.
	c, err := db.GetCredential("alice")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "hash-1", c.PasswordHash)
}

func TestCreateFirstUser_Gate(t *testing.T) {
	db := setup(t)

	first := &AppUser{UserName: "admin", Role: "admin", CreatedAtUTC: time.Now().UTC()}
	created, err := db.CreateFirstUser(first, "hash-1")
	require.NoError(t, err)
	assert.True(t, created)

	second := &AppUser{UserName: "admin2", Role: "admin", CreatedAtUTC: time.Now().UTC()}
	created, err = db.CreateFirstUser(second, "hash-2")
	require.NoError(t, err)
	assert.False(t, created)

	// The loser left no rows behind, credential included.
	u, err := db.GetUser("admin2")
	require.NoError(t, err)
	assert.Nil(t, u)
	c, err := db.GetCredential("admin2")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestDeleteUser_RemovesCredentialAndKey(t *testing.T) {
	db := setup(t)

	_, err := db.CreateAPIKey("fp-alice", "normal")
	require.NoError(t, err)

	user := &AppUser{UserName: "alice", Role: "normal", ApiKey: "sk-raw", CreatedAtUTC: time.Now().UTC()}
	require.NoError(t, db.CreateUser(user, "hash-1"))

	deleted, err := db.DeleteUser("alice", "fp-alice")
	require.NoError(t, err)
	assert.True(t, deleted)

	u, err := db.GetUser("alice")
	require.NoError(t, err)
	assert.Nil(t, u)

	// Credential went with the user via cascade.
	c, err := db.GetCredential("alice")
	require.NoError(t, err)
	assert.Nil(t, c)

	k, err := db.GetAPIKeyByFingerprint("fp-alice")
	require.NoError(t, err)
	assert.Nil(t, k)
}

func TestDeleteUser_Unknown(t *testing.T) {
	db := setup(t)

	deleted, err := db.DeleteUser("nobody", "")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpdateCredential_RowCount(t *testing.T) {
	db := setup(t)

	user := &AppUser{UserName: "alice", Role: "normal", CreatedAtUTC: time.Now().UTC()}
	require.NoError(t, db.CreateUser(user, "hash-1"))

	changed, err := db.UpdateCredential("alice", "hash-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, changed)

	changed, err = db.UpdateCredential("nobody", "hash-3")
	require.NoError(t, err)
	assert.EqualValues(t, 0, changed)
}
