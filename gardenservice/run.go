// Package gardenservice wires and runs the MindGarden HTTP service.
package gardenservice

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/DavideLicci/MindGarden/internal/api"
	"github.com/DavideLicci/MindGarden/internal/auth"
	"github.com/DavideLicci/MindGarden/internal/chat"
	"github.com/DavideLicci/MindGarden/internal/config"
	"github.com/DavideLicci/MindGarden/internal/factory"
	"github.com/DavideLicci/MindGarden/internal/garden"
	"github.com/DavideLicci/MindGarden/internal/health"
	"github.com/DavideLicci/MindGarden/internal/insight"
	"github.com/DavideLicci/MindGarden/internal/jobs"
	"github.com/DavideLicci/MindGarden/internal/llm"
	"github.com/DavideLicci/MindGarden/internal/logger"
	"github.com/DavideLicci/MindGarden/internal/services"
	"github.com/DavideLicci/MindGarden/internal/store"
	"github.com/DavideLicci/MindGarden/internal/uploads"
)

const shutdownTimeout = 10 * time.Second

// Run starts the garden service and blocks until shutdown or error.
func Run() error {
	log := logger.New("mindgarden-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	return RunWithConfig(cfg, log)
}

// RunWithConfig is Run with the configuration already resolved.
func RunWithConfig(cfg *config.Config, log zerolog.Logger) error {
	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("llm_provider", cfg.LLMProvider).
		Bool("jobs_in_process", cfg.JobsInProcess).
		Msg("MindGarden service starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store unavailable")
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}()

	client, llmConfigured, err := factory.NewLLM(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("LLM provider unavailable")
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	svcHealth := startHealthCheckers(gctx, g, cfg, log, st, client, llmConfigured)
	router := buildRouter(cfg, log, st, client, svcHealth)

	if cfg.JobsInProcess {
		worker := jobs.NewWorker(st, factory.JobsConfig(cfg), log)
		scheduler := jobs.NewScheduler(st, cfg.RetentionInterval(), log)
		g.Go(func() error { return ignoreCanceled(worker.Run(gctx)) })
		g.Go(func() error { return ignoreCanceled(scheduler.Run(gctx)) })
	}

	server := newHTTPServer(gctx, cfg, router)
	g.Go(func() error {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Stack().Err(err).Msg("MindGarden service failed")
		return err
	}
	log.Info().Msg("Server exited")
	return nil
}

func buildRouter(cfg *config.Config, log zerolog.Logger, st store.Store, client llm.Client, h api.HealthReporter) http.Handler {
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	generator := garden.NewGenerator(garden.NewPlacer(nil))

	return api.NewRouter(api.Deps{
		Authorizer: tokens,
		Health:     h,
		Signer:     uploads.NewSigner(cfg.UploadBaseURL, cfg.UploadSigningKey, uploads.DefaultTTL),
		Users:      services.NewUserService(st, tokens),
		CheckIns:   services.NewCheckInService(st, generator, log),
		Gardens:    services.NewGardenService(st, log),
		Insights:   services.NewInsightService(st, insight.NewGenerator(client, log), log),
		Chat:       services.NewChatService(st, chat.NewCompanion(client, log)),
		Analytics:  services.NewAnalyticsService(st),
		Settings:   services.NewSettingsService(st),
		Jobs:       services.NewJobService(st, log),
	})
}

// startHealthCheckers runs the component checkers and the service aggregator
// in g. The LLM is only checked when a provider is configured.
func startHealthCheckers(ctx context.Context, g *errgroup.Group, cfg *config.Config, log zerolog.Logger, st store.Store, client llm.Client, llmConfigured bool) *health.Service {
	interval := cfg.HealthInterval()
	probeTimeout := cfg.HealthProbeTimeout()

	checkers := []health.Checker{store.NewHealthChecker(st, log, probeTimeout)}
	if llmConfigured {
		checkers = append(checkers, llm.NewHealthChecker(client, log, probeTimeout))
	}
	for _, c := range checkers {
		g.Go(func() error {
			c.Start(ctx, interval)
			return nil
		})
	}

	svcHealth := health.NewService(log, checkers...)
	g.Go(func() error {
		svcHealth.Start(ctx, interval)
		return nil
	})
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
