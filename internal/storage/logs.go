package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const logColumns = `log_id, vehicle_id, entry_time, exit_time, gate_id`

func (p *SQLProvider) ListEntryExitLogs(ctx context.Context, limit int) ([]EntryExitLog, error) {
	rows := []EntryExitLog{}
	err := p.db.SelectContext(ctx, &rows,
		`SELECT `+logColumns+` FROM EntryExitLog LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, p.dbError(err)
	}
	return rows, nil
}

func (p *SQLProvider) GetEntryExitLog(ctx context.Context, id int64) (*EntryExitLog, error) {
	var l EntryExitLog
	err := p.db.GetContext(ctx, &l,
		`SELECT `+logColumns+` FROM EntryExitLog WHERE log_id = ?`, id)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &l, nil
}

func (p *SQLProvider) CreateEntryExitLog(ctx context.Context, l *EntryExitLog) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		// A log without an entry time records the moment of insert, never null.
		if l.EntryTime == nil {
			now := Now()
			l.EntryTime = &now
		}
		if l.LogID > 0 {
			_, err := tx.ExecContext(ctx, `
INSERT INTO EntryExitLog (log_id, vehicle_id, entry_time, exit_time, gate_id)
VALUES (?, ?, ?, ?, ?)`,
				l.LogID, l.VehicleID, l.EntryTime, l.ExitTime, l.GateID)
			return err
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO EntryExitLog (vehicle_id, entry_time, exit_time, gate_id)
VALUES (?, ?, ?, ?)`,
			l.VehicleID, l.EntryTime, l.ExitTime, l.GateID)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		l.LogID = id
		return nil
	})
}

func (p *SQLProvider) UpdateEntryExitLog(ctx context.Context, id int64, l *EntryExitLog) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE EntryExitLog
SET vehicle_id = ?, entry_time = ?, exit_time = ?, gate_id = ?
WHERE log_id = ?`,
			l.VehicleID, l.EntryTime, l.ExitTime, l.GateID, id)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		l.LogID = id
		return nil
	})
}

func (p *SQLProvider) DeleteEntryExitLog(ctx context.Context, id int64) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM EntryExitLog WHERE log_id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
