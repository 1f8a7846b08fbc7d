package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-access-control/internal/config"
)

func newBareSQLite(t *testing.T) *SQLiteProvider {
	t.Helper()

	provider, err := NewSQLiteProvider(&config.Storage{
		SQLite: &config.SQLiteStorage{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { provider.Close() })
	return provider
}

func tableCount(t *testing.T, p *SQLiteProvider, table string) int {
	t.Helper()

	var n int
	err := p.db.Get(&n,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
	require.NoError(t, err)
	return n
}

func TestMigrateUpDownRoundTrip(t *testing.T) {
	provider := newBareSQLite(t)
	runner := NewMigrationRunner(provider.db.DB, "sqlite3")
	ctx := t.Context()

	latest, err := runner.LatestVersion()
	require.NoError(t, err)
	require.GreaterOrEqual(t, latest, 1)

	require.NoError(t, runner.MigrateTo(ctx, -1))
	assert.Equal(t, 1, tableCount(t, provider, "Vehicle"))
	assert.Equal(t, 1, tableCount(t, provider, "EntryExitLog"))

	version, err := runner.currentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, latest, version)

	// Already at target, a second run is a no-op
	require.NoError(t, runner.MigrateTo(ctx, -1))

	require.NoError(t, runner.MigrateTo(ctx, 0))
	assert.Equal(t, 0, tableCount(t, provider, "Vehicle"))
	assert.Equal(t, 0, tableCount(t, provider, "EntryExitLog"))

	version, err = runner.currentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	// Schema comes back after rolling forward again
	require.NoError(t, runner.MigrateTo(ctx, -1))
	assert.Equal(t, 1, tableCount(t, provider, "Gate"))
}

func TestParseMigrationFilename(t *testing.T) {
	runner := NewMigrationRunner(nil, "sqlite3")

	m, err := runner.parseMigrationFile("migrations/sqlite3/0001_initial_schema.up.sql")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version)
	assert.Equal(t, "initial_schema", m.Name)
	assert.True(t, m.Up)
	assert.NotEmpty(t, m.SQL)

	_, err = runner.parseMigrationFile("migrations/sqlite3/junk.sql")
	assert.Error(t, err)
}

func TestSkipMigration(t *testing.T) {
	runner := NewMigrationRunner(nil, "sqlite3")

	up := SchemaMigration{Version: 1, Up: true}
	down := SchemaMigration{Version: 1, Up: false}

	// Moving up from zero applies up files only
	assert.False(t, runner.skipMigration(up, 0, 1))
	assert.True(t, runner.skipMigration(down, 0, 1))

	// Moving down applies down files only
	assert.True(t, runner.skipMigration(up, 1, 0))
	assert.False(t, runner.skipMigration(down, 1, 0))

	// Already-applied versions are not reapplied
	assert.True(t, runner.skipMigration(up, 1, 2))
}
