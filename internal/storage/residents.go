package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const residentColumns = `resident_id, user_id, name, address, phone, prefix, lastname, citizen_id`

func (p *SQLProvider) ListResidents(ctx context.Context, limit int) ([]Resident, error) {
	rows := []Resident{}
	err := p.db.SelectContext(ctx, &rows,
		`SELECT `+residentColumns+` FROM Resident LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, p.dbError(err)
	}
	return rows, nil
}

func (p *SQLProvider) GetResident(ctx context.Context, id int64) (*Resident, error) {
	var r Resident
	err := p.db.GetContext(ctx, &r,
		`SELECT `+residentColumns+` FROM Resident WHERE resident_id = ?`, id)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &r, nil
}

func (p *SQLProvider) CreateResident(ctx context.Context, r *Resident) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		if r.ResidentID > 0 {
			_, err := tx.ExecContext(ctx, `
INSERT INTO Resident (resident_id, user_id, name, address, phone, prefix, lastname, citizen_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				r.ResidentID, r.UserID, r.Name, r.Address, r.Phone, r.Prefix, r.Lastname, r.CitizenID)
			return err
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO Resident (user_id, name, address, phone, prefix, lastname, citizen_id)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.UserID, r.Name, r.Address, r.Phone, r.Prefix, r.Lastname, r.CitizenID)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		r.ResidentID = id
		return nil
	})
}

func (p *SQLProvider) UpdateResident(ctx context.Context, id int64, r *Resident) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE Resident
SET user_id = ?, name = ?, address = ?, phone = ?, prefix = ?, lastname = ?, citizen_id = ?
WHERE resident_id = ?`,
			r.UserID, r.Name, r.Address, r.Phone, r.Prefix, r.Lastname, r.CitizenID, id)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		r.ResidentID = id
		return nil
	})
}

func (p *SQLProvider) DeleteResident(ctx context.Context, id int64) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM Resident WHERE resident_id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
