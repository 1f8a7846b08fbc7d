package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const staffColumns = `staff_id, name, shift_time, phone, gate_id`

func (p *SQLProvider) ListSecurityStaff(ctx context.Context, limit int) ([]SecurityStaff, error) {
	rows := []SecurityStaff{}
	err := p.db.SelectContext(ctx, &rows,
		`SELECT `+staffColumns+` FROM SecurityStaff LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, p.dbError(err)
	}
	return rows, nil
}

func (p *SQLProvider) GetSecurityStaff(ctx context.Context, id int64) (*SecurityStaff, error) {
	var s SecurityStaff
	err := p.db.GetContext(ctx, &s,
		`SELECT `+staffColumns+` FROM SecurityStaff WHERE staff_id = ?`, id)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &s, nil
}

func (p *SQLProvider) CreateSecurityStaff(ctx context.Context, s *SecurityStaff) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		if s.StaffID > 0 {
			_, err := tx.ExecContext(ctx, `
INSERT INTO SecurityStaff (staff_id, name, shift_time, phone, gate_id)
VALUES (?, ?, ?, ?, ?)`,
				s.StaffID, s.Name, s.ShiftTime, s.Phone, s.GateID)
			return err
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO SecurityStaff (name, shift_time, phone, gate_id)
VALUES (?, ?, ?, ?)`,
			s.Name, s.ShiftTime, s.Phone, s.GateID)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.StaffID = id
		return nil
	})
}

func (p *SQLProvider) UpdateSecurityStaff(ctx context.Context, id int64, s *SecurityStaff) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE SecurityStaff
SET name = ?, shift_time = ?, phone = ?, gate_id = ?
WHERE staff_id = ?`,
			s.Name, s.ShiftTime, s.Phone, s.GateID, id)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		s.StaffID = id
		return nil
	})
}

func (p *SQLProvider) DeleteSecurityStaff(ctx context.Context, id int64) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM SecurityStaff WHERE staff_id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
