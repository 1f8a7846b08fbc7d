package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const vehicleColumns = `vehicle_id, province, license_plate_img, vehicle_img, resident_id, license_plate, vehicle_type, color, brand`

func (p *SQLProvider) ListVehicles(ctx context.Context, limit int) ([]Vehicle, error) {
	rows := []Vehicle{}
	err := p.db.SelectContext(ctx, &rows,
		`SELECT `+vehicleColumns+` FROM Vehicle LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, p.dbError(err)
	}
	return rows, nil
}

func (p *SQLProvider) GetVehicle(ctx context.Context, id int64) (*Vehicle, error) {
	var v Vehicle
	err := p.db.GetContext(ctx, &v,
		`SELECT `+vehicleColumns+` FROM Vehicle WHERE vehicle_id = ?`, id)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &v, nil
}

func (p *SQLProvider) CreateVehicle(ctx context.Context, v *Vehicle) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		// A caller-supplied id is inserted explicitly so imports can keep
		// their numbering; otherwise the database assigns one.
		if v.VehicleID > 0 {
			_, err := tx.ExecContext(ctx, `
INSERT INTO Vehicle (vehicle_id, province, license_plate_img, vehicle_img, resident_id, license_plate, vehicle_type, color, brand)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				v.VehicleID, v.Province, v.LicensePlateImg, v.VehicleImg,
				v.ResidentID, v.LicensePlate, v.VehicleType, v.Color, v.Brand)
			return err
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO Vehicle (province, license_plate_img, vehicle_img, resident_id, license_plate, vehicle_type, color, brand)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			v.Province, v.LicensePlateImg, v.VehicleImg,
			v.ResidentID, v.LicensePlate, v.VehicleType, v.Color, v.Brand)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.VehicleID = id
		return nil
	})
}

func (p *SQLProvider) UpdateVehicle(ctx context.Context, id int64, v *Vehicle) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE Vehicle
SET province = ?, license_plate_img = ?, vehicle_img = ?, resident_id = ?,
    license_plate = ?, vehicle_type = ?, color = ?, brand = ?
WHERE vehicle_id = ?`,
			v.Province, v.LicensePlateImg, v.VehicleImg, v.ResidentID,
			v.LicensePlate, v.VehicleType, v.Color, v.Brand, id)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		v.VehicleID = id
		return nil
	})
}

func (p *SQLProvider) DeleteVehicle(ctx context.Context, id int64) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM Vehicle WHERE vehicle_id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
