package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const incidentColumns = `incident_id, description, incident_time, vehicle_id, security_staff_id, gate_id`

func (p *SQLProvider) ListIncidentReports(ctx context.Context, limit int) ([]IncidentReport, error) {
	rows := []IncidentReport{}
	err := p.db.SelectContext(ctx, &rows,
		`SELECT `+incidentColumns+` FROM IncidentReport LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, p.dbError(err)
	}
	return rows, nil
}

func (p *SQLProvider) GetIncidentReport(ctx context.Context, id int64) (*IncidentReport, error) {
	var r IncidentReport
	err := p.db.GetContext(ctx, &r,
		`SELECT `+incidentColumns+` FROM IncidentReport WHERE incident_id = ?`, id)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &r, nil
}

func (p *SQLProvider) CreateIncidentReport(ctx context.Context, r *IncidentReport) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		// Reports filed without a timestamp are stamped at insert time.
		if r.IncidentTime == nil {
			now := Now()
			r.IncidentTime = &now
		}
		if r.IncidentID > 0 {
			_, err := tx.ExecContext(ctx, `
INSERT INTO IncidentReport (incident_id, description, incident_time, vehicle_id, security_staff_id, gate_id)
VALUES (?, ?, ?, ?, ?, ?)`,
				r.IncidentID, r.Description, r.IncidentTime,
				r.VehicleID, r.SecurityStaffID, r.GateID)
			return err
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO IncidentReport (description, incident_time, vehicle_id, security_staff_id, gate_id)
VALUES (?, ?, ?, ?, ?)`,
			r.Description, r.IncidentTime, r.VehicleID, r.SecurityStaffID, r.GateID)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		r.IncidentID = id
		return nil
	})
}

func (p *SQLProvider) UpdateIncidentReport(ctx context.Context, id int64, r *IncidentReport) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE IncidentReport
SET description = ?, incident_time = ?, vehicle_id = ?, security_staff_id = ?, gate_id = ?
WHERE incident_id = ?`,
			r.Description, r.IncidentTime, r.VehicleID, r.SecurityStaffID, r.GateID, id)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		r.IncidentID = id
		return nil
	})
}

func (p *SQLProvider) DeleteIncidentReport(ctx context.Context, id int64) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM IncidentReport WHERE incident_id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
