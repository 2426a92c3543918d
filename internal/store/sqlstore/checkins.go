package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// --- CheckIns ---
type checkIns struct{ s *Store }

const checkInColumns = `id, user_id, text, stt_text, audio_object_key, emotion_label, sentiment_score, intensity, tags, status, created_at`

func (c *checkIns) Record(ctx context.Context, rec *model.CheckInRecord) error {
	if rec == nil || rec.CheckIn == nil || rec.Plant == nil {
		return fmt.Errorf("record: check-in and plant are required")
	}
	ci, p := rec.CheckIn, rec.Plant
	now := c.s.now()

	tags, err := json.Marshal(nonNilTags(ci.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	params, err := json.Marshal(p.Params)
	if err != nil {
		return fmt.Errorf("encode plant params: %w", err)
	}
	pos, err := json.Marshal(p.Position)
	if err != nil {
		return fmt.Errorf("encode plant position: %w", err)
	}
	status := ci.Status
	if status == "" {
		status = model.CheckInStatusComplete
	}
	plantID := p.ID
	if plantID == "" {
		plantID = uuid.NewString()
	}
	skin := p.StyleSkin
	if skin == "" {
		skin = model.DefaultStyleSkin
	}

	var id int64
	err = c.s.inTx(ctx, func(tx *sql.Tx) error {
		row := c.s.queryRow(ctx, tx, `
			INSERT INTO checkins (user_id, text, stt_text, audio_object_key, emotion_label, sentiment_score, intensity, tags, status, created_at)
			VALUES (?,?,?,?,?,?,?,?,?,?)
			RETURNING id`,
			ci.UserID, ci.Text, ci.STTText, ci.AudioObjectKey, ci.EmotionLabel, ci.SentimentScore, ci.Intensity, string(tags), status, now)
		if err := row.Scan(&id); err != nil {
			return err
		}

		res, err := c.s.exec(ctx, tx, `UPDATE gardens SET health=? WHERE user_id=?`, rec.GardenHealth, ci.UserID)
		if err != nil {
			return err
		}
		if err := requireOne(res); err != nil {
			return fmt.Errorf("garden for user %d: %w", ci.UserID, err)
		}

		_, err = c.s.exec(ctx, tx, `
			INSERT INTO plants (id, user_id, checkin_id, archetype, params, position, style_skin, health, growth_progress, created_at)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			plantID, ci.UserID, id, p.Archetype, string(params), string(pos), skin, p.Health, p.GrowthProgress, now)
		return err
	})
	if err != nil {
		return err
	}

	ci.ID, ci.Status, ci.CreatedAt = id, status, now
	ci.Tags = nonNilTags(ci.Tags)
	p.ID, p.UserID, p.CheckInID, p.StyleSkin, p.CreatedAt = plantID, ci.UserID, &id, skin, now
	return nil
}

func (c *checkIns) Get(ctx context.Context, id int64) (*model.CheckIn, error) {
	row := c.s.queryRow(ctx, c.s.db, `SELECT `+checkInColumns+` FROM checkins WHERE id=?`, id)
	out, err := scanCheckIn(row)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (c *checkIns) List(ctx context.Context, req model.ListCheckInsRequest) ([]*model.CheckIn, error) {
	var q strings.Builder
	q.WriteString(`SELECT ` + checkInColumns + ` FROM checkins WHERE user_id=?`)
	args := []any{req.UserID}
	if req.Since != nil {
		q.WriteString(` AND created_at >= ?`)
		args = append(args, req.Since.UTC())
	}
	q.WriteString(` ORDER BY created_at DESC, id DESC`)
	if req.Limit > 0 {
		q.WriteString(` LIMIT ?`)
		args = append(args, req.Limit)
	}

	rows, err := c.s.query(ctx, c.s.db, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []*model.CheckIn
	for rows.Next() {
		ci, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, ci)
	}
	return res, rows.Err()
}

func (c *checkIns) Delete(ctx context.Context, userID, id int64) error {
	return c.s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := c.s.exec(ctx, tx, `UPDATE plants SET checkin_id=NULL WHERE checkin_id=? AND user_id=?`, id, userID); err != nil {
			return err
		}
		res, err := c.s.exec(ctx, tx, `DELETE FROM checkins WHERE id=? AND user_id=?`, id, userID)
		if err != nil {
			return err
		}
		return requireOne(res)
	})
}

func (c *checkIns) ClearAudio(ctx context.Context, userID int64, cutoff time.Time) (int64, error) {
	res, err := c.s.exec(ctx, c.s.db, `
		UPDATE checkins SET audio_object_key=NULL
		WHERE user_id=? AND audio_object_key IS NOT NULL AND created_at < ?`, userID, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanCheckIn(row scanner) (*model.CheckIn, error) {
	var out model.CheckIn
	var tags string
	if err := row.Scan(&out.ID, &out.UserID, &out.Text, &out.STTText, &out.AudioObjectKey,
		&out.EmotionLabel, &out.SentimentScore, &out.Intensity, &tags, &out.Status, &out.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &out.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of check-in %d: %w", out.ID, err)
	}
	out.Tags = nonNilTags(out.Tags)
	return &out, nil
}

func nonNilTags(t []string) []string {
	if t == nil {
		return []string{}
	}
	return t
}
