package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/DavideLicci/MindGarden/internal/model"
)

type insights struct{ s *Store }

func (i *insights) CreateBatch(ctx context.Context, batch []model.Insight) error {
	if len(batch) == 0 {
		return nil
	}
	now := i.s.now()
	return i.s.inTx(ctx, func(tx *sql.Tx) error {
		for k := range batch {
			in := &batch[k]
			if in.ID == "" {
				in.ID = uuid.NewString()
			}
			if in.CreatedAt.IsZero() {
				in.CreatedAt = now
			}
			src := in.SourceCheckInIDs
			if src == nil {
				src = []int64{}
			}
			raw, err := json.Marshal(src)
			if err != nil {
				return fmt.Errorf("encode insight sources: %w", err)
			}
			if _, err := i.s.exec(ctx, tx, `
				INSERT INTO insights (id, user_id, text, insight_type, source_checkins, created_at)
				VALUES (?,?,?,?,?,?)`, in.ID, in.UserID, in.Text, in.InsightType, string(raw), in.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (i *insights) List(ctx context.Context, userID int64, limit int) ([]*model.Insight, error) {
	q := `SELECT id, user_id, text, insight_type, source_checkins, created_at FROM insights WHERE user_id=? ORDER BY created_at DESC, id`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := i.s.query(ctx, i.s.db, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []*model.Insight
	for rows.Next() {
		var out model.Insight
		var src string
		if err := rows.Scan(&out.ID, &out.UserID, &out.Text, &out.InsightType, &src, &out.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(src), &out.SourceCheckInIDs); err != nil {
			return nil, fmt.Errorf("decode sources of insight %s: %w", out.ID, err)
		}
		res = append(res, &out)
	}
	return res, rows.Err()
}
