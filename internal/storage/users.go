package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const userColumns = `user_id, email, username, password, role, created_at`

func (p *SQLProvider) ListUsers(ctx context.Context, limit int) ([]User, error) {
	rows := []User{}
	err := p.db.SelectContext(ctx, &rows,
		`SELECT `+userColumns+` FROM User LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, p.dbError(err)
	}
	return rows, nil
}

func (p *SQLProvider) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	err := p.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM User WHERE user_id = ?`, id)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &u, nil
}

func (p *SQLProvider) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := p.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM User WHERE username = ?`, username)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &u, nil
}

// CreateUser assigns created_at on the server; any caller-supplied value is
// ignored, and the stored value is echoed back on the record.
func (p *SQLProvider) CreateUser(ctx context.Context, u *User) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		now := Now()
		if u.UserID > 0 {
			_, err := tx.ExecContext(ctx, `
INSERT INTO User (user_id, username, password, role, email, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
				u.UserID, u.Username, u.Password, u.Role, u.Email, now)
			if err != nil {
				return err
			}
			u.CreatedAt = &now
			return nil
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO User (username, password, role, email, created_at)
VALUES (?, ?, ?, ?, ?)`,
			u.Username, u.Password, u.Role, u.Email, now)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		u.UserID = id
		u.CreatedAt = &now
		return nil
	})
}

// UpdateUser pre-checks that no other user holds the requested username, then
// replaces all fields. created_at is overwritten with the current time on
// every update, as the system this replaces did. Both statements run in one
// transaction.
func (p *SQLProvider) UpdateUser(ctx context.Context, id int64, u *User) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		var takenBy int64
		err := tx.GetContext(ctx, &takenBy,
			`SELECT user_id FROM User WHERE username = ? AND user_id != ?`, u.Username, id)
		switch {
		case err == nil:
			return fmt.Errorf("%w: username is already in use by another user", ErrConflict)
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}

		now := Now()
		res, err := tx.ExecContext(ctx, `
UPDATE User
SET username = ?, password = ?, role = ?, email = ?, created_at = ?
WHERE user_id = ?`,
			u.Username, u.Password, u.Role, u.Email, now, id)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		u.UserID = id
		u.CreatedAt = &now
		return nil
	})
}

func (p *SQLProvider) DeleteUser(ctx context.Context, id int64) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM User WHERE user_id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
