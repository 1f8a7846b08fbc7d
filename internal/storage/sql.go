package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/jmoiron/sqlx"

	"vehicle-access-control/internal/config"
)

// SQLProvider implements Provider over any sqlx-compatible driver using `?`
// placeholders. Backend-specific error classification is injected by the
// sqlite/mysql constructors.
type SQLProvider struct {
	db *sqlx.DB

	classify func(error) error

	logger *slog.Logger
}

func NewSQLProvider(driverName string, dataSource string, classify func(error) error) (*SQLProvider, error) {
	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	logger := slog.With("component", "storage", "driver", driverName)

	return &SQLProvider{
		db:       db,
		classify: classify,
		logger:   logger,
	}, nil
}

func (p *SQLProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLProvider) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

func (p *SQLProvider) GetSchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := p.db.GetContext(ctx, &version,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err != nil {
		return 0, p.dbError(err)
	}
	return version, nil
}

// dbError maps a driver error onto the storage taxonomy. Unknown errors pass
// through untouched and surface as internal.
func (p *SQLProvider) dbError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrConnection) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if p.classify != nil {
		if mapped := p.classify(err); mapped != nil {
			return mapped
		}
	}
	return err
}

// withTx runs fn inside a transaction. Any failure rolls back before the
// error is returned; the underlying connection goes back to the pool on every
// path.
func (p *SQLProvider) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return p.dbError(err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			p.logger.Error("Rollback failed", "error", rbErr)
		}
		return p.dbError(err)
	}
	if err := tx.Commit(); err != nil {
		return p.dbError(err)
	}
	return nil
}

// clampLimit enforces the fixed result cap on list queries.
func clampLimit(limit int) int {
	if limit <= 0 || limit > config.MAX_LIST_LIMIT {
		return config.MAX_LIST_LIMIT
	}
	return limit
}

// affected converts a write result into the not-found contract: a statement
// that executed but matched zero rows is indistinguishable from a missing
// record.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
