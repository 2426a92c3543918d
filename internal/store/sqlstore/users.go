package sqlstore

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// --- Users ---
type users struct{ s *Store }

func (u *users) Register(ctx context.Context, email, passwordHash string) (*model.User, error) {
	email = strings.ToLower(email)
	now := u.s.now()
	out := &model.User{Email: email, PasswordHash: passwordHash, CreatedAt: now}
	def := model.DefaultSettings(0)

	err := u.s.inTx(ctx, func(tx *sql.Tx) error {
		row := u.s.queryRow(ctx, tx, `
			INSERT INTO users (email, password_hash, created_at)
			VALUES (?,?,?)
			RETURNING id`, email, passwordHash, now)
		if err := row.Scan(&out.ID); err != nil {
			if u.s.d.IsUniqueViolation != nil && u.s.d.IsUniqueViolation(err) {
				return model.ErrConflict
			}
			return err
		}
		if _, err := u.s.exec(ctx, tx, `
			INSERT INTO gardens (id, user_id, health, created_at)
			VALUES (?,?,?,?)`, uuid.NewString(), out.ID, model.DefaultGardenHealth, now); err != nil {
			return err
		}
		_, err := u.s.exec(ctx, tx, `
			INSERT INTO settings (user_id, processing_mode, audio_retention_days, share_anonymized)
			VALUES (?,?,?,?)`, out.ID, def.ProcessingMode, def.AudioRetentionDays, def.ShareAnonymized)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *users) Get(ctx context.Context, userID int64) (*model.User, error) {
	row := u.s.queryRow(ctx, u.s.db, `SELECT id, email, password_hash, created_at FROM users WHERE id=?`, userID)
	return scanUser(row)
}

func (u *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := u.s.queryRow(ctx, u.s.db, `SELECT id, email, password_hash, created_at FROM users WHERE email=?`, strings.ToLower(email))
	return scanUser(row)
}

func scanUser(row scanner) (*model.User, error) {
	var out model.User
	if err := row.Scan(&out.ID, &out.Email, &out.PasswordHash, &out.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

func (u *users) Purge(ctx context.Context, userID int64, keepJobID string) error {
	return u.s.inTx(ctx, func(tx *sql.Tx) error {
		stmts := []string{
			`DELETE FROM plants WHERE user_id=?`,
			`DELETE FROM insights WHERE user_id=?`,
			`DELETE FROM checkins WHERE user_id=?`,
			`DELETE FROM settings WHERE user_id=?`,
			`DELETE FROM gardens WHERE user_id=?`,
		}
		for _, q := range stmts {
			if _, err := u.s.exec(ctx, tx, q, userID); err != nil {
				return err
			}
		}
		if _, err := u.s.exec(ctx, tx, `DELETE FROM jobs WHERE user_id=? AND id<>?`, userID, keepJobID); err != nil {
			return err
		}
		_, err := u.s.exec(ctx, tx, `DELETE FROM users WHERE id=?`, userID)
		return err
	})
}

// --- Gardens ---
type gardens struct{ s *Store }

func (g *gardens) GetByUser(ctx context.Context, userID int64) (*model.Garden, error) {
	var out model.Garden
	row := g.s.queryRow(ctx, g.s.db, `SELECT id, user_id, health, created_at FROM gardens WHERE user_id=?`, userID)
	if err := row.Scan(&out.ID, &out.UserID, &out.Health, &out.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &out, nil
}

// --- Settings ---
type settings struct{ s *Store }

func (st *settings) Get(ctx context.Context, userID int64) (*model.Settings, error) {
	row := st.s.queryRow(ctx, st.s.db, `
		SELECT user_id, processing_mode, audio_retention_days, share_anonymized
		FROM settings WHERE user_id=?`, userID)
	out, err := scanSettings(row)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (st *settings) Upsert(ctx context.Context, m *model.Settings) error {
	_, err := st.s.exec(ctx, st.s.db, `
		INSERT INTO settings (user_id, processing_mode, audio_retention_days, share_anonymized)
		VALUES (?,?,?,?)
		ON CONFLICT (user_id) DO UPDATE SET
			processing_mode=excluded.processing_mode,
			audio_retention_days=excluded.audio_retention_days,
			share_anonymized=excluded.share_anonymized`,
		m.UserID, m.ProcessingMode, m.AudioRetentionDays, m.ShareAnonymized)
	return err
}

func (st *settings) List(ctx context.Context) ([]*model.Settings, error) {
	rows, err := st.s.query(ctx, st.s.db, `
		SELECT user_id, processing_mode, audio_retention_days, share_anonymized
		FROM settings ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Settings
	for rows.Next() {
		m, err := scanSettings(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func scanSettings(row scanner) (*model.Settings, error) {
	var out model.Settings
	if err := row.Scan(&out.UserID, &out.ProcessingMode, &out.AudioRetentionDays, &out.ShareAnonymized); err != nil {
		return nil, err
	}
	return &out, nil
}
