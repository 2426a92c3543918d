package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// --- Plants ---
type plants struct{ s *Store }

const plantColumns = `id, user_id, checkin_id, archetype, params, position, style_skin, health, growth_progress, created_at`

func (p *plants) Get(ctx context.Context, id string) (*model.PlantInstance, error) {
	row := p.s.queryRow(ctx, p.s.db, `SELECT `+plantColumns+` FROM plants WHERE id=?`, id)
	out, err := scanPlant(row)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (p *plants) ListByUser(ctx context.Context, userID int64) ([]*model.PlantInstance, error) {
	rows, err := p.s.query(ctx, p.s.db, `SELECT `+plantColumns+` FROM plants WHERE user_id=? ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []*model.PlantInstance
	for rows.Next() {
		pl, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, pl)
	}
	return res, rows.Err()
}

func (p *plants) UpdateCare(ctx context.Context, id string, health, growth float64) error {
	res, err := p.s.exec(ctx, p.s.db, `UPDATE plants SET health=?, growth_progress=? WHERE id=?`, health, growth, id)
	if err != nil {
		return err
	}
	return requireOne(res)
}

func scanPlant(row scanner) (*model.PlantInstance, error) {
	var out model.PlantInstance
	var params, pos string
	if err := row.Scan(&out.ID, &out.UserID, &out.CheckInID, &out.Archetype, &params, &pos,
		&out.StyleSkin, &out.Health, &out.GrowthProgress, &out.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(params), &out.Params); err != nil {
		return nil, fmt.Errorf("decode params of plant %s: %w", out.ID, err)
	}
	if err := json.Unmarshal([]byte(pos), &out.Position); err != nil {
		return nil, fmt.Errorf("decode position of plant %s: %w", out.ID, err)
	}
	return &out, nil
}
