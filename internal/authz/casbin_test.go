package authz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

const testPolicy = `p, admin, /api/v1/*, (GET)|(POST)|(PUT)|(DELETE)
p, normal, /api/v1/stores, GET
p, normal, /api/v1/stores/:storeID, (GET)|(POST)
p, normal, /api/v1/stores/:storeID/objects/:objectID, GET
`

func newTestEnforcer(t *testing.T) func(sub, obj, act string) bool {
	t.Helper()

	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.conf")
	policyPath := filepath.Join(dir, "policy.csv")
	require.NoError(t, os.WriteFile(modelPath, []byte(testModel), 0644))
	require.NoError(t, os.WriteFile(policyPath, []byte(testPolicy), 0644))

	e, err := NewEnforcerFromFiles(modelPath, policyPath)
	require.NoError(t, err)

	return func(sub, obj, act string) bool {
		ok, err := e.Enforce(sub, obj, act)
		require.NoError(t, err)
		return ok
	}
}

func TestEnforcer_AdminHasFullAccess(t *testing.T) {
	enforce := newTestEnforcer(t)

	assert.True(t, enforce("admin", "/api/v1/users", "POST"))
	assert.True(t, enforce("admin", "/api/v1/users/alice", "DELETE"))
	assert.True(t, enforce("admin", "/api/v1/apikeys", "POST"))
	assert.True(t, enforce("admin", "/api/v1/stores", "PUT"))
	assert.True(t, enforce("admin", "/api/v1/stores/1/objects/abc", "DELETE"))
}

func TestEnforcer_NormalIsScopedToStores(t *testing.T) {
	enforce := newTestEnforcer(t)

	assert.True(t, enforce("normal", "/api/v1/stores", "GET"))
	assert.True(t, enforce("normal", "/api/v1/stores/1", "GET"))
	assert.True(t, enforce("normal", "/api/v1/stores/1", "POST"))
	assert.True(t, enforce("normal", "/api/v1/stores/1/objects/abc", "GET"))

	// No user or key administration, no store creation, no object deletion.
	assert.False(t, enforce("normal", "/api/v1/users", "GET"))
	assert.False(t, enforce("normal", "/api/v1/users", "POST"))
	assert.False(t, enforce("normal", "/api/v1/apikeys", "POST"))
	assert.False(t, enforce("normal", "/api/v1/stores", "PUT"))
	assert.False(t, enforce("normal", "/api/v1/stores/1/objects/abc", "DELETE"))
}

func TestEnforcer_UnknownRoleDeniedEverywhere(t *testing.T) {
	enforce := newTestEnforcer(t)

	assert.False(t, enforce("", "/api/v1/stores", "GET"))
	assert.False(t, enforce("viewer", "/api/v1/stores", "GET"))
}
