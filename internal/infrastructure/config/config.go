package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Database string `yaml:"database"`
}

type SecurityConfig struct {
	// CryptoSecret keys the password hasher. No default: a deployment
	// without one cannot serve authenticated traffic.
	CryptoSecret string `yaml:"crypto_secret"`

	// RoleCacheSize bounds the fingerprint->role lookup cache;
	// 0 selects the built-in default.
	RoleCacheSize int `yaml:"role_cache_size"`
}

type ApplicationConfig struct {
	Version string `yaml:"version"`
}

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Security    SecurityConfig    `yaml:"security"`
	Application ApplicationConfig `yaml:"application"`
}

// Default returns a config populated with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Database: "data/storehub.db",
		},
		Application: ApplicationConfig{
			Version: "v1.0.0",
		},
	}
}

// Load attempts to read configs/app.yaml; if not present returns defaults.
// Environment variables override the file.
func Load() *Config {
	cfg := Default()
	path := filepath.Join("configs", "app.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		if !errorsIsNotExist(err) {
			return cfg
		}
	} else {
		_ = yaml.Unmarshal(b, cfg)
	}

	// Environment overrides (non-fatal)
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Database.Database = v
	}
	if v := os.Getenv("CRYPTO_SECRET"); v != "" {
		cfg.Security.CryptoSecret = v
	}
	return cfg
}

// helpers
func errorsIsNotExist(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	return os.IsNotExist(err)
}
