// Package jobsworker runs the standalone jobs worker.
package jobsworker

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/DavideLicci/MindGarden/internal/config"
	"github.com/DavideLicci/MindGarden/internal/factory"
	"github.com/DavideLicci/MindGarden/internal/jobs"
	"github.com/DavideLicci/MindGarden/internal/logger"
)

// Run starts the worker and the retention scheduler and blocks until shutdown or error.
func Run() error {
	log := logger.New("jobs-worker")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("config")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("store")
		return err
	}
	defer func() { _ = st.Close() }()

	w := jobs.NewWorker(st, factory.JobsConfig(cfg), log)
	s := jobs.NewScheduler(st, cfg.RetentionInterval(), log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error { return s.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("jobs worker exit")
		return err
	}
	return nil
}
