package usecases

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secure-store-hub/internal/apikey"
	"secure-store-hub/internal/domain/entities"
	repo "secure-store-hub/internal/infrastructure/repository/sqlite"
)

func newKeyUseCase(t *testing.T) *KeyUseCase {
	t.Helper()
	uc, err := NewKeyUseCase(repo.NewKeyRepo(), 0)
	require.NoError(t, err)
	return uc
}

func TestKeyUseCase_GenerateAndResolve(t *testing.T) {
	setupTestDB(t)
	uc := newKeyUseCase(t)

	id, rawKey, err := uc.GenerateKey(entities.RoleNormal)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.True(t, apikey.ValidFormat(rawKey))

	role, err := uc.ResolveRole(rawKey)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleNormal, role)

	// Second resolution is served from the cache and must agree.
	role, err = uc.ResolveRole(rawKey)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleNormal, role)

	// A cold cache over the same store still resolves correctly.
	cold := newKeyUseCase(t)
	role, err = cold.ResolveRole(rawKey)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleNormal, role)
}

func TestKeyUseCase_UnknownKeyResolvesToNone(t *testing.T) {
	setupTestDB(t)
	uc := newKeyUseCase(t)

	role, err := uc.ResolveRole("sk-AAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleNone, role)

	// Garbage that is not even key-shaped behaves the same.
	role, err = uc.ResolveRole("not a key")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleNone, role)
}

func TestKeyUseCase_Revoke(t *testing.T) {
	setupTestDB(t)
	uc := newKeyUseCase(t)

	_, rawKey, err := uc.GenerateKey(entities.RoleAdmin)
	require.NoError(t, err)

	// Warm the cache, then revoke; the cached entry must not survive.
	role, err := uc.ResolveRole(rawKey)
	require.NoError(t, err)
	require.Equal(t, entities.RoleAdmin, role)

	require.NoError(t, uc.RevokeKey(rawKey))

	role, err = uc.ResolveRole(rawKey)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleNone, role)

	// Revoking again is a no-op, not an error.
	assert.NoError(t, uc.RevokeKey(rawKey))
}

func TestKeyUseCase_ReassignRole(t *testing.T) {
	setupTestDB(t)
	uc := newKeyUseCase(t)

	_, rawKey, err := uc.GenerateKey(entities.RoleNormal)
	require.NoError(t, err)

	role, err := uc.ResolveRole(rawKey)
	require.NoError(t, err)
	require.Equal(t, entities.RoleNormal, role)

	updated, err := uc.ReassignRole(rawKey, entities.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, updated)

	// The cached entry was dropped, so the new role is visible immediately.
	role, err = uc.ResolveRole(rawKey)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, role)

	updated, err = uc.ReassignRole("sk-AAAAAAAAAAAAAAAAAAAAAAAAAAAAA", entities.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestKeyUseCase_GenerateFirstKey(t *testing.T) {
	setupTestDB(t)
	uc := newKeyUseCase(t)

	created, rawKey, err := uc.GenerateFirstKey()
	require.NoError(t, err)
	require.True(t, created)
	require.NotEmpty(t, rawKey)

	// The bootstrap key carries the admin role.
	role, err := uc.ResolveRole(rawKey)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, role)

	// A second attempt finds the registry non-empty and yields nothing.
	created, rawKey, err = uc.GenerateFirstKey()
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, rawKey)
}

func TestKeyUseCase_GenerateFirstKey_NotAfterOrdinaryKey(t *testing.T) {
	setupTestDB(t)
	uc := newKeyUseCase(t)

	_, _, err := uc.GenerateKey(entities.RoleNormal)
	require.NoError(t, err)

	created, _, err := uc.GenerateFirstKey()
	require.NoError(t, err)
	assert.False(t, created)
}

func TestKeyUseCase_GenerateFirstKey_Concurrent(t *testing.T) {
	setupTestDB(t)
	uc := newKeyUseCase(t)

	const attempts = 16
	results := make(chan bool, attempts)
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, _, err := uc.GenerateFirstKey()
			if err != nil {
				errs <- err
				return
			}
			results <- created
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	successes := 0
	for created := range results {
		if created {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "exactly one bootstrap call may win")
}
