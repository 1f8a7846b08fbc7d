package storage

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Transaction discipline is easiest to prove against a mock: sqlmock fails
// the test unless the exact begin/exec/rollback sequence happened.

func newMockProvider(t *testing.T) (*SQLProvider, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	p := &SQLProvider{
		db:     sqlx.NewDb(db, "sqlmock"),
		logger: slog.Default(),
	}
	return p, mock
}

func TestCreateRollsBackOnInsertFailure(t *testing.T) {
	p, mock := newMockProvider(t)

	insertErr := errors.New("NOT NULL constraint failed: Gate.gate_type")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO Gate").WillReturnError(insertErr)
	mock.ExpectRollback()

	gate := Gate{Location: "North"}
	err := p.CreateGate(context.Background(), &gate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT NULL constraint failed")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRollsBackOnZeroRows(t *testing.T) {
	p, mock := newMockProvider(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE Gate").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	gate := Gate{Location: "North", GateType: "เข้า"}
	err := p.UpdateGate(context.Background(), 5, &gate)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCommitsOnSuccess(t *testing.T) {
	p, mock := newMockProvider(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM Gate").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, p.DeleteGate(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNetworkErrorMapsToConnectionError(t *testing.T) {
	p, mock := newMockProvider(t)

	mock.ExpectBegin().WillReturnError(&net.OpError{
		Op:  "dial",
		Err: errors.New("connection refused"),
	})

	gate := Gate{Location: "North", GateType: "เข้า"}
	err := p.CreateGate(context.Background(), &gate)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestUnknownDriverErrorPassesThrough(t *testing.T) {
	p, mock := newMockProvider(t)

	weird := errors.New("disk image is malformed")
	mock.ExpectQuery("SELECT (.+) FROM Gate").WillReturnError(weird)

	_, err := p.GetGate(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrConnection)
	assert.Contains(t, err.Error(), "disk image is malformed")
}
