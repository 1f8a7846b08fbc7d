package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"vehicle-access-control/internal/config"
)

type MySQLProvider struct {
	SQLProvider
}

func NewMySQLProvider(cfg *config.Storage) (*MySQLProvider, error) {
	// multiStatements is needed by the migration runner, which applies each
	// migration file as one batch.
	dsn := cfg.MySQL.DSN() + "&multiStatements=true"

	provider, err := NewSQLProvider("mysql", dsn, classifyMySQLError)
	if err != nil {
		return nil, err
	}
	provider.db.SetMaxOpenConns(20)
	provider.db.SetMaxIdleConns(5)
	provider.db.SetConnMaxLifetime(30 * time.Minute)

	return &MySQLProvider{SQLProvider: *provider}, nil
}

func classifyMySQLError(err error) error {
	if errors.Is(err, mysql.ErrInvalidConn) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	var merr *mysql.MySQLError
	if !errors.As(err, &merr) {
		return nil
	}
	switch merr.Number {
	// Duplicate key, null column, and foreign key violations are all
	// client-correctable write conflicts.
	case 1048, 1062, 1169, 1216, 1217, 1451, 1452, 1557:
		return fmt.Errorf("%w: %s", ErrConflict, merr.Message)
	// Access denied / unknown database surface as connection failures.
	case 1044, 1045, 1049, 1130:
		return fmt.Errorf("%w: %s", ErrConnection, merr.Message)
	}
	return nil
}
