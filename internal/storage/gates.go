package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const gateColumns = `gate_id, location, gate_type`

func (p *SQLProvider) ListGates(ctx context.Context, limit int) ([]Gate, error) {
	rows := []Gate{}
	err := p.db.SelectContext(ctx, &rows,
		`SELECT `+gateColumns+` FROM Gate LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, p.dbError(err)
	}
	return rows, nil
}

func (p *SQLProvider) GetGate(ctx context.Context, id int64) (*Gate, error) {
	var g Gate
	err := p.db.GetContext(ctx, &g,
		`SELECT `+gateColumns+` FROM Gate WHERE gate_id = ?`, id)
	if err != nil {
		return nil, p.dbError(err)
	}
	return &g, nil
}

func (p *SQLProvider) CreateGate(ctx context.Context, g *Gate) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		if g.GateID > 0 {
			_, err := tx.ExecContext(ctx, `
INSERT INTO Gate (gate_id, location, gate_type)
VALUES (?, ?, ?)`,
				g.GateID, g.Location, g.GateType)
			return err
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO Gate (location, gate_type)
VALUES (?, ?)`,
			g.Location, g.GateType)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		g.GateID = id
		return nil
	})
}

func (p *SQLProvider) UpdateGate(ctx context.Context, id int64, g *Gate) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE Gate
SET location = ?, gate_type = ?
WHERE gate_id = ?`,
			g.Location, g.GateType, id)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		g.GateID = id
		return nil
	})
}

func (p *SQLProvider) DeleteGate(ctx context.Context, id int64) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM Gate WHERE gate_id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
