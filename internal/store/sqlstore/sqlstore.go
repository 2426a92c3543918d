// Package sqlstore implements store.Store over database/sql. The sqlite and
// postgres packages supply the connection, the schema and a Dialect; all
// queries are written once with ? placeholders.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// Dialect captures what differs between the supported databases.
type Dialect struct {
	Name string
	// Numbered rewrites ? placeholders as $1, $2, ...
	Numbered bool
	// LeaseLock is appended to the job lease subquery.
	LeaseLock string
	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation func(error) bool
}

func (d Dialect) rebind(q string) string {
	if !d.Numbered {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

// New wraps an open, migrated database.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d, now: func() time.Time { return time.Now().UTC() }}
}

// Store is the shared store.Store implementation.
type Store struct {
	db  *sql.DB
	d   Dialect
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

func (s *Store) Users() store.Users       { return &users{s} }
func (s *Store) Gardens() store.Gardens   { return &gardens{s} }
func (s *Store) CheckIns() store.CheckIns { return &checkIns{s} }
func (s *Store) Plants() store.Plants     { return &plants{s} }
func (s *Store) Insights() store.Insights { return &insights{s} }
func (s *Store) Settings() store.Settings { return &settings{s} }
func (s *Store) Jobs() store.Jobs         { return &jobs{s} }

// DB exposes the underlying connection.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// HealthPing implements health.Pinger.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) exec(ctx context.Context, x execer, q string, args ...any) (sql.Result, error) {
	return x.ExecContext(ctx, s.d.rebind(q), args...)
}

func (s *Store) query(ctx context.Context, x execer, q string, args ...any) (*sql.Rows, error) {
	return x.QueryContext(ctx, s.d.rebind(q), args...)
}

func (s *Store) queryRow(ctx context.Context, x execer, q string, args ...any) *sql.Row {
	return x.QueryRowContext(ctx, s.d.rebind(q), args...)
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// notFound maps sql.ErrNoRows onto the domain sentinel.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

func requireOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}
