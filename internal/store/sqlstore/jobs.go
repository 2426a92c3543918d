package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// --- Jobs ---
type jobs struct{ s *Store }

const jobColumns = `id, user_id, kind, format, status, attempts, result_path, error, next_attempt_at, created_at, updated_at, completed_at`

func (j *jobs) Enqueue(ctx context.Context, m *model.Job) error {
	now := j.s.now()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.NextAttemptAt.IsZero() {
		m.NextAttemptAt = now
	}
	m.Status, m.Attempts, m.CreatedAt, m.UpdatedAt = model.JobPending, 0, now, now
	_, err := j.s.exec(ctx, j.s.db, `
		INSERT INTO jobs (id, user_id, kind, format, status, attempts, result_path, error, next_attempt_at, created_at, updated_at)
		VALUES (?,?,?,?,?,0,'','',?,?,?)`,
		m.ID, m.UserID, m.Kind, m.Format, m.Status, m.NextAttemptAt.UTC(), now, now)
	return err
}

func (j *jobs) Get(ctx context.Context, id string) (*model.Job, error) {
	row := j.s.queryRow(ctx, j.s.db, `SELECT `+jobColumns+` FROM jobs WHERE id=?`, id)
	out, err := scanJob(row)
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (j *jobs) Lease(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*model.Job, error) {
	now = now.UTC()
	var out []*model.Job
	err := j.s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := j.s.query(ctx, tx, `
			UPDATE jobs SET status='running', next_attempt_at=?, updated_at=?
			WHERE id IN (
				SELECT id FROM jobs
				WHERE status IN ('pending','running') AND next_attempt_at <= ?
				ORDER BY created_at ASC
				LIMIT ? `+j.s.d.LeaseLock+`
			)
			RETURNING `+jobColumns, now.Add(lease), now, now, limit)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			m, err := scanJob(rows)
			if err != nil {
				return err
			}
			out = append(out, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (j *jobs) MarkDone(ctx context.Context, id, resultPath string) error {
	now := j.s.now()
	res, err := j.s.exec(ctx, j.s.db, `
		UPDATE jobs SET status='done', result_path=?, error='', updated_at=?, completed_at=?
		WHERE id=?`, resultPath, now, now, id)
	if err != nil {
		return err
	}
	return requireOne(res)
}

func (j *jobs) MarkFailed(ctx context.Context, id, cause string, next time.Time, final bool) error {
	now := j.s.now()
	status := model.JobPending
	var completed *time.Time
	if final {
		status = model.JobFailed
		completed = &now
	}
	res, err := j.s.exec(ctx, j.s.db, `
		UPDATE jobs SET status=?, attempts=attempts+1, error=?, next_attempt_at=?, updated_at=?, completed_at=?
		WHERE id=?`, status, cause, next.UTC(), now, completed, id)
	if err != nil {
		return err
	}
	return requireOne(res)
}

func (j *jobs) HasOpen(ctx context.Context, userID int64, kind string) (bool, error) {
	var n int
	err := j.s.queryRow(ctx, j.s.db, `
		SELECT COUNT(*) FROM jobs
		WHERE user_id=? AND kind=? AND status IN ('pending','running')`, userID, kind).Scan(&n)
	return n > 0, err
}

func scanJob(row scanner) (*model.Job, error) {
	var out model.Job
	if err := row.Scan(&out.ID, &out.UserID, &out.Kind, &out.Format, &out.Status, &out.Attempts,
		&out.ResultPath, &out.Error, &out.NextAttemptAt, &out.CreatedAt, &out.UpdatedAt, &out.CompletedAt); err != nil {
		return nil, err
	}
	return &out, nil
}
