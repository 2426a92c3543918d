package factory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/config"
	"github.com/DavideLicci/MindGarden/internal/store"
	"github.com/DavideLicci/MindGarden/internal/store/postgres"
	"github.com/DavideLicci/MindGarden/internal/store/sqlite"
	"github.com/DavideLicci/MindGarden/internal/store/sqlstore"
)

// postgresConnectWindow bounds how long startup waits for Postgres.
const postgresConnectWindow = 30 * time.Second

// NewStore opens the store selected by cfg.DBDriver and applies migrations.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		st, err := sqlite.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return st, nil
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("%s_POSTGRES_DSN is required when DB_DRIVER=postgres", config.EnvPrefix)
		}
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = 500 * time.Millisecond
		exp.MaxInterval = 5 * time.Second
		exp.MaxElapsedTime = postgresConnectWindow
		st, err := backoff.RetryNotifyWithData(
			func() (*sqlstore.Store, error) { return postgres.New(ctx, cfg.PostgresDSN) },
			backoff.WithContext(exp, ctx),
			func(err error, wait time.Duration) {
				log.Warn().Err(err).Dur("retry_in", wait).Msg("postgres not ready")
			},
		)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		log.Info().Msg("postgres store ready")
		return st, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
