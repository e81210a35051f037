package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/storehub.db", cfg.Database.Database)

	// No default secret: a deployment must supply one explicitly.
	assert.Empty(t, cfg.Security.CryptoSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/override.db")
	t.Setenv("CRYPTO_SECRET", "env-secret")

	cfg := Load()

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Database)
	assert.Equal(t, "env-secret", cfg.Security.CryptoSecret)
}

func TestLoad_BadPortIgnored(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Server.Port)
}
