package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secure-store-hub/internal/application/usecases"
	"secure-store-hub/internal/database"
	"secure-store-hub/internal/domain/entities"
	repo "secure-store-hub/internal/infrastructure/repository/sqlite"
)

func setupKeys(t *testing.T) *usecases.KeyUseCase {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDatabase(dbPath))
	t.Cleanup(func() {
		if db := database.GetDatabase(); db != nil {
			_ = db.Close()
		}
	})

	keys, err := usecases.NewKeyUseCase(repo.NewKeyRepo(), 0)
	require.NoError(t, err)
	return keys
}

func notPublic(*http.Request) bool { return false }

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	keys := setupKeys(t)
	_, rawKey, err := keys.GenerateKey(entities.RoleNormal)
	require.NoError(t, err)

	var seen *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	req.Header.Set(HeaderName, rawKey)
	rec := httptest.NewRecorder()

	APIKeyAuthMiddleware(keys, notPublic)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, entities.RoleNormal, seen.Role)
	assert.Equal(t, rawKey, seen.Key)
}

func TestAPIKeyAuth_Rejections(t *testing.T) {
	keys := setupKeys(t)
	_, rawKey, err := keys.GenerateKey(entities.RoleNormal)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not run for rejected requests")
	})
	handler := APIKeyAuthMiddleware(keys, notPublic)(next)

	cases := []struct {
		name    string
		headers []string
	}{
		{"missing header", nil},
		{"empty header", []string{""}},
		{"unknown key", []string{"sk-AAAAAAAAAAAAAAAAAAAAAAAAAAAAA"}},
		{"repeated header", []string{rawKey, rawKey}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
			for _, v := range tc.headers {
				req.Header.Add(HeaderName, v)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			// Every rejection looks the same from outside.
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"Invalid parameters"}`, rec.Body.String())
		})
	}
}

func TestAPIKeyAuth_RevokedKeyRejected(t *testing.T) {
	keys := setupKeys(t)
	_, rawKey, err := keys.GenerateKey(entities.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, keys.RevokeKey(rawKey))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not run for a revoked key")
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/alice", nil)
	req.Header.Set(HeaderName, rawKey)
	rec := httptest.NewRecorder()

	APIKeyAuthMiddleware(keys, notPublic)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyAuth_PublicPathSkipsAuth(t *testing.T) {
	keys := setupKeys(t)

	isPublic := func(r *http.Request) bool { return r.URL.Path == "/api/v1/health" }
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := PrincipalFrom(r.Context())
		assert.False(t, ok, "public requests carry no principal")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	APIKeyAuthMiddleware(keys, isPublic)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
