package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const permissionColumns = `permission_id, vehicle_id, resident_id, allowed_gate_id, start_date, end_date`

func (p *SQLProvider) ListAccessPermissions(ctx context.Context, limit int) ([]AccessPermission, error) {
	rows := []AccessPermission{}
	err := p.db.SelectContext(ctx, &rows,
		`SELECT `+permissionColumns+` FROM AccessPermission LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, p.dbError(err)
	}
	return rows, nil
}

func (p *SQLProvider) GetAccessPermission(ctx context.Context, id int64) (*AccessPermission, error) {
	var perm AccessPermission
	err := p.db.GetContext(ctx, &perm,
		`SELECT `+permissionColumns+` FROM AccessPermission WHERE permission_id = ?`, id)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &perm, nil
}

func (p *SQLProvider) CreateAccessPermission(ctx context.Context, perm *AccessPermission) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		if perm.PermissionID > 0 {
			_, err := tx.ExecContext(ctx, `
INSERT INTO AccessPermission (permission_id, vehicle_id, resident_id, allowed_gate_id, start_date, end_date)
VALUES (?, ?, ?, ?, ?, ?)`,
				perm.PermissionID, perm.VehicleID, perm.ResidentID,
				perm.AllowedGateID, perm.StartDate, perm.EndDate)
			return err
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO AccessPermission (vehicle_id, resident_id, allowed_gate_id, start_date, end_date)
VALUES (?, ?, ?, ?, ?)`,
			perm.VehicleID, perm.ResidentID, perm.AllowedGateID, perm.StartDate, perm.EndDate)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		perm.PermissionID = id
		return nil
	})
}

func (p *SQLProvider) UpdateAccessPermission(ctx context.Context, id int64, perm *AccessPermission) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE AccessPermission
SET vehicle_id = ?, resident_id = ?, allowed_gate_id = ?, start_date = ?, end_date = ?
WHERE permission_id = ?`,
			perm.VehicleID, perm.ResidentID, perm.AllowedGateID,
			perm.StartDate, perm.EndDate, id)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		perm.PermissionID = id
		return nil
	})
}

func (p *SQLProvider) DeleteAccessPermission(ctx context.Context, id int64) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM AccessPermission WHERE permission_id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
