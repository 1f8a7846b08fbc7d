package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const visitorColumns = `visitor_id, name, phone, purpose, vehicle_id, resident_id`

func (p *SQLProvider) ListVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows := []Visitor{}
	err := p.db.SelectContext(ctx, &rows,
		`SELECT `+visitorColumns+` FROM Visitor LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, p.dbError(err)
	}
	return rows, nil
}

func (p *SQLProvider) GetVisitor(ctx context.Context, id int64) (*Visitor, error) {
	var v Visitor
	err := p.db.GetContext(ctx, &v,
		`SELECT `+visitorColumns+` FROM Visitor WHERE visitor_id = ?`, id)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &v, nil
}

func (p *SQLProvider) CreateVisitor(ctx context.Context, v *Visitor) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		if v.VisitorID > 0 {
			_, err := tx.ExecContext(ctx, `
INSERT INTO Visitor (visitor_id, name, phone, purpose, vehicle_id, resident_id)
VALUES (?, ?, ?, ?, ?, ?)`,
				v.VisitorID, v.Name, v.Phone, v.Purpose, v.VehicleID, v.ResidentID)
			return err
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO Visitor (name, phone, purpose, vehicle_id, resident_id)
VALUES (?, ?, ?, ?, ?)`,
			v.Name, v.Phone, v.Purpose, v.VehicleID, v.ResidentID)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.VisitorID = id
		return nil
	})
}

func (p *SQLProvider) UpdateVisitor(ctx context.Context, id int64, v *Visitor) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE Visitor
SET name = ?, phone = ?, purpose = ?, vehicle_id = ?, resident_id = ?
WHERE visitor_id = ?`,
			v.Name, v.Phone, v.Purpose, v.VehicleID, v.ResidentID, id)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		v.VisitorID = id
		return nil
	})
}

func (p *SQLProvider) DeleteVisitor(ctx context.Context, id int64) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM Visitor WHERE visitor_id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
