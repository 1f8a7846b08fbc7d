package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, yaml string) *Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	return cfg
}

func TestLoadConfigMySQLOnly(t *testing.T) {
	cfg := loadFrom(t, `
secret: test-secret
storage:
  mysql:
    host: db
    port: 3306
    username: vac
    password: hunter2
    database: vac
`)

	require.NotNil(t, cfg.Storage.MySQL)
	assert.Nil(t, cfg.Storage.SQLite, "mysql-only config must not grow a sqlite backend")
	assert.Contains(t, cfg.Storage.MySQL.DSN(), "tcp(db:3306)/vac")
}

func TestLoadConfigMySQLPrecedence(t *testing.T) {
	cfg := loadFrom(t, `
secret: test-secret
storage:
  local:
    path: ./leftover.db
  mysql:
    host: db
    port: 3306
    username: vac
    password: hunter2
    database: vac
`)

	require.NotNil(t, cfg.Storage.MySQL)
	assert.Nil(t, cfg.Storage.SQLite)
}

func TestLoadConfigDefaultsToSQLite(t *testing.T) {
	cfg := loadFrom(t, "secret: test-secret\n")

	assert.Nil(t, cfg.Storage.MySQL)
	require.NotNil(t, cfg.Storage.SQLite)
	assert.True(t, strings.HasPrefix(cfg.Storage.SQLite.Path, getConfigPath()))
	assert.True(t, strings.HasSuffix(cfg.Storage.SQLite.Path, "data/storage.db"))
}

func TestLoadConfigEmptySQLitePath(t *testing.T) {
	// An explicitly empty path falls back to the default instead of
	// producing an unopenable DSN.
	cfg := loadFrom(t, `
secret: test-secret
storage:
  local:
    path: ""
`)

	require.NotNil(t, cfg.Storage.SQLite)
	assert.True(t, strings.HasSuffix(cfg.Storage.SQLite.Path, "data/storage.db"))
}

func TestLoadConfigMemorySQLite(t *testing.T) {
	cfg := loadFrom(t, `
secret: test-secret
storage:
  local:
    path: ":memory:"
`)

	require.NotNil(t, cfg.Storage.SQLite)
	assert.Equal(t, ":memory:", cfg.Storage.SQLite.Path, "in-memory DSN must not be path-prefixed")
}

func TestLoadConfigRelativePathGetsInstancePrefix(t *testing.T) {
	cfg := loadFrom(t, `
secret: test-secret
storage:
  local:
    path: gates.db
`)

	require.NotNil(t, cfg.Storage.SQLite)
	assert.Equal(t, getConfigPath()+"/gates.db", cfg.Storage.SQLite.Path)
}
