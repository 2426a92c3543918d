package store

import (
	"context"
	"time"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
// Missing rows are reported as model.ErrNotFound.
type Store interface {
	Users() Users
	Gardens() Gardens
	CheckIns() CheckIns
	Plants() Plants
	Insights() Insights
	Settings() Settings
	Jobs() Jobs
	Close() error
}

type Users interface {
	// Register creates the user with its garden and default settings in one
	// transaction. A taken email yields model.ErrConflict.
	Register(ctx context.Context, email, passwordHash string) (*model.User, error)
	Get(ctx context.Context, userID int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Purge deletes every row owned by the user except the job keepJobID.
	Purge(ctx context.Context, userID int64, keepJobID string) error
}

type Gardens interface {
	GetByUser(ctx context.Context, userID int64) (*model.Garden, error)
}

type CheckIns interface {
	// Record stores the check-in, its plant and the new garden health
	// atomically. IDs and timestamps are filled in on success.
	Record(ctx context.Context, rec *model.CheckInRecord) error
	Get(ctx context.Context, id int64) (*model.CheckIn, error)
	// List returns check-ins newest first. Limit <= 0 means no limit.
	List(ctx context.Context, req model.ListCheckInsRequest) ([]*model.CheckIn, error)
	// Delete removes the check-in and detaches its plants.
	Delete(ctx context.Context, userID, id int64) error
	// ClearAudio drops audio object keys of check-ins created before cutoff.
	ClearAudio(ctx context.Context, userID int64, cutoff time.Time) (int64, error)
}

type Plants interface {
	Get(ctx context.Context, id string) (*model.PlantInstance, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.PlantInstance, error)
	UpdateCare(ctx context.Context, id string, health, growth float64) error
}

type Insights interface {
	CreateBatch(ctx context.Context, insights []model.Insight) error
	// List returns insights newest first. Limit <= 0 means no limit.
	List(ctx context.Context, userID int64, limit int) ([]*model.Insight, error)
}

type Settings interface {
	Get(ctx context.Context, userID int64) (*model.Settings, error)
	Upsert(ctx context.Context, s *model.Settings) error
	List(ctx context.Context) ([]*model.Settings, error)
}

type Jobs interface {
	Enqueue(ctx context.Context, j *model.Job) error
	Get(ctx context.Context, id string) (*model.Job, error)
	// Lease claims up to limit runnable jobs until now+lease and marks them running.
	Lease(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]*model.Job, error)
	MarkDone(ctx context.Context, id, resultPath string) error
	// MarkFailed records the failure. A final failure is terminal; otherwise
	// the job is retried at next.
	MarkFailed(ctx context.Context, id, cause string, next time.Time, final bool) error
	// HasOpen reports whether a pending or running job of kind exists for the user.
	HasOpen(ctx context.Context, userID int64, kind string) (bool, error)
}
