// Package storage provides a simple, embedded-file based schema migration system.
//
// Migration SQL files are embedded via embed.FS under the "migrations"
// directory and discovered from a driver-specific subdirectory
// (migrations/sqlite3, migrations/mysql).
//
// Migration file naming and format
//   - Filenames must match the pattern: NNNN_name.up.sql or NNNN_name.down.sql
//     (regex: ^(?P<Version>\d{4})\_(?P<Name>[^.]+)\.(?P<Direction>(up|down))\.sql$).
//   - Version is a four-digit integer (e.g. 0001, 0002).
//   - Each file contains raw SQL applied as one batch when that migration runs.
//
// Applied versions are tracked in the schema_migrations table. Adding or
// removing migration files requires rebuilding the binary.

package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"vehicle-access-control/internal/config"
)

//go:embed migrations/**/*.sql
var migrationsFS embed.FS

var reMigrationFilename = regexp.MustCompile(`^(?P<Version>\d{4})\_(?P<Name>[^.]+)\.(?P<Direction>(up|down))\.sql$`)

var ErrMigrateCurrentVersionSameAsTarget = errors.New("current version is the same as target version")

// SchemaMigration represents a single database migration
type SchemaMigration struct {
	Version int
	Name    string
	Up      bool
	SQL     string
}

func (m *SchemaMigration) After() int {
	if m.Up {
		return m.Version
	}
	return m.Version - 1
}

// MigrationRunner handles database migrations
type MigrationRunner struct {
	db         *sql.DB
	driver     string
	migrations []SchemaMigration
	logger     *slog.Logger
}

func NewMigrationRunner(db *sql.DB, driver string) *MigrationRunner {
	logger := slog.With("component", "migrations", "driver", driver)

	return &MigrationRunner{
		db:         db,
		driver:     driver,
		migrations: []SchemaMigration{},
		logger:     logger,
	}
}

func (mr *MigrationRunner) dir() (string, error) {
	switch mr.driver {
	case "sqlite3", "mysql":
		return "migrations/" + mr.driver, nil
	}
	return "", fmt.Errorf("unsupported driver: %s", mr.driver)
}

// LatestVersion scans migration files and returns the highest version number.
func (mr *MigrationRunner) LatestVersion() (int, error) {
	dirPath, err := mr.dir()
	if err != nil {
		return -1, err
	}

	entries, err := migrationsFS.ReadDir(dirPath)
	if err != nil {
		return -1, fmt.Errorf("failed to read migration directory: %w", err)
	}

	latest := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		migration, err := mr.parseMigrationFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			continue
		}
		if migration.Up && migration.Version > latest {
			latest = migration.Version
		}
	}

	return latest, nil
}

// LoadMigrations loads the migrations needed to move the schema from prior to
// target. A target of -1 means the latest version; 0 means the zero state.
func (mr *MigrationRunner) LoadMigrations(prior int, target int) error {
	if target == -1 {
		latest, err := mr.LatestVersion()
		if err != nil {
			return fmt.Errorf("failed to get latest migration version: %w", err)
		}
		target = latest
	}

	if prior == target {
		return ErrMigrateCurrentVersionSameAsTarget
	}

	dirPath, err := mr.dir()
	if err != nil {
		return err
	}

	entries, err := migrationsFS.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	mr.migrations = mr.migrations[:0]
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		migration, err := mr.parseMigrationFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			mr.logger.Warn("Failed to parse migration file", "file", entry.Name(), "error", err)
			continue
		}
		if mr.skipMigration(migration, prior, target) {
			continue
		}
		mr.migrations = append(mr.migrations, migration)
	}

	up := prior < target
	sort.Slice(mr.migrations, func(i, j int) bool {
		if up {
			return mr.migrations[i].Version < mr.migrations[j].Version
		}
		return mr.migrations[i].Version > mr.migrations[j].Version
	})

	mr.logger.Info("Loaded migrations", "count", len(mr.migrations), "from_version", prior, "to_version", target)
	return nil
}

func (mr *MigrationRunner) skipMigration(migration SchemaMigration, currentVersion int, targetVersion int) bool {
	if targetVersion > currentVersion {
		if !migration.Up {
			return true
		}
		return migration.Version > targetVersion || migration.Version <= currentVersion
	}
	if migration.Up {
		return true
	}
	return migration.Version <= targetVersion || migration.Version > currentVersion
}

// parseMigrationFile parses a migration filename and reads its content.
func (mr *MigrationRunner) parseMigrationFile(path string) (SchemaMigration, error) {
	filename := filepath.Base(path)
	parts := reMigrationFilename.FindStringSubmatch(filename)
	if parts == nil {
		return SchemaMigration{}, fmt.Errorf("invalid migration filename: %s", filename)
	}

	sqlText, err := migrationsFS.ReadFile(path)
	if err != nil {
		return SchemaMigration{}, fmt.Errorf("failed to read migration file: %w", err)
	}

	version, _ := strconv.Atoi(parts[reMigrationFilename.SubexpIndex("Version")])
	return SchemaMigration{
		Version: version,
		Name:    parts[reMigrationFilename.SubexpIndex("Name")],
		Up:      parts[reMigrationFilename.SubexpIndex("Direction")] == "up",
		SQL:     string(sqlText),
	}, nil
}

func (mr *MigrationRunner) ensureVersionTable(ctx context.Context) error {
	_, err := mr.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	return err
}

func (mr *MigrationRunner) currentVersion(ctx context.Context) (int, error) {
	var version int
	err := mr.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	return version, err
}

// MigrateTo brings the schema to the target version, applying each loaded
// migration in its own transaction together with the version bookkeeping.
func (mr *MigrationRunner) MigrateTo(ctx context.Context, target int) error {
	if err := mr.ensureVersionTable(ctx); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	current, err := mr.currentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if err := mr.LoadMigrations(current, target); err != nil {
		if errors.Is(err, ErrMigrateCurrentVersionSameAsTarget) {
			mr.logger.Debug("Schema already at target version", "version", current)
			return nil
		}
		return err
	}

	for _, migration := range mr.migrations {
		if err := mr.apply(ctx, migration); err != nil {
			return fmt.Errorf("migration %04d_%s failed: %w", migration.Version, migration.Name, err)
		}
		mr.logger.Info("Applied migration", "version", migration.Version, "name", migration.Name, "up", migration.Up)
	}

	return nil
}

func (mr *MigrationRunner) apply(ctx context.Context, migration SchemaMigration) error {
	tx, err := mr.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return err
	}

	if migration.Up {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
			migration.Version, migration.Name)
	} else {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM schema_migrations WHERE version = ?`, migration.Version)
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

// runMigrations brings a freshly opened backend to the latest schema.
func (p *SQLProvider) runMigrations(driver string) error {
	runner := NewMigrationRunner(p.db.DB, driver)
	return runner.MigrateTo(context.Background(), -1)
}

// Migrate opens the configured backend and moves its schema to the target
// version. Used by the migrate subcommand; target -1 means latest.
func Migrate(cfg *config.Storage, target int) error {
	var (
		provider *SQLProvider
		driver   string
	)
	switch {
	case cfg.MySQL != nil:
		p, err := NewMySQLProvider(cfg)
		if err != nil {
			return err
		}
		provider, driver = &p.SQLProvider, "mysql"
	case cfg.SQLite != nil:
		p, err := NewSQLiteProvider(cfg)
		if err != nil {
			return err
		}
		provider, driver = &p.SQLProvider, "sqlite3"
	default:
		return fmt.Errorf("unsupported storage configuration")
	}
	defer provider.Close()

	runner := NewMigrationRunner(provider.db.DB, driver)
	return runner.MigrateTo(context.Background(), target)
}
