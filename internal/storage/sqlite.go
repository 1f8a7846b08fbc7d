package storage

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"vehicle-access-control/internal/config"
)

type SQLiteProvider struct {
	SQLProvider
}

func NewSQLiteProvider(cfg *config.Storage) (*SQLiteProvider, error) {
	dsn := cfg.SQLite.Path
	memory := dsn == ":memory:"
	if memory {
		// A plain :memory: DSN gives every pooled connection its own empty
		// database. Shared cache plus a single connection keeps one database
		// behind the pool.
		dsn = "file::memory:?cache=shared"
	}

	provider, err := NewSQLProvider("sqlite3", dsn, classifySQLiteError)
	if err != nil {
		return nil, err
	}
	if memory {
		provider.db.SetMaxOpenConns(1)
	}

	return &SQLiteProvider{SQLProvider: *provider}, nil
}

func classifySQLiteError(err error) error {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return nil
	}
	switch serr.Code {
	case sqlite3.ErrConstraint:
		return fmt.Errorf("%w: %s", ErrConflict, serr.Error())
	case sqlite3.ErrCantOpen, sqlite3.ErrNotADB, sqlite3.ErrPerm, sqlite3.ErrAuth, sqlite3.ErrBusy:
		return fmt.Errorf("%w: %s", ErrConnection, serr.Error())
	}
	return nil
}
