package store

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/health"
	"github.com/DavideLicci/MindGarden/internal/model"
)

// HealthChecker monitors store health with periodic probes.
type HealthChecker struct {
	store        Store
	healthy      atomic.Bool
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewHealthChecker creates a checker that starts unhealthy until the first
// successful probe.
func NewHealthChecker(s Store, log zerolog.Logger, probeTimeout time.Duration) *HealthChecker {
	return &HealthChecker{store: s, log: log, probeTimeout: probeTimeout}
}

// Name returns the checker name.
func (hc *HealthChecker) Name() string { return "store" }

// IsHealthy returns the cached health status (non-blocking).
func (hc *HealthChecker) IsHealthy() bool { return hc.healthy.Load() }

// Start begins periodic health checking.
func (hc *HealthChecker) Start(ctx context.Context, interval time.Duration) {
	health.Probe(ctx, interval, hc.probeTimeout, &hc.healthy, hc.log, hc.Name(), hc.probe)
}

func (hc *HealthChecker) probe(ctx context.Context) error {
	// Prefer specialized HealthPing if the store provides it
	if p, ok := hc.store.(health.Pinger); ok {
		return p.HealthPing(ctx)
	}
	// Fallback: a read that reaches the database; a miss still proves it answers.
	if _, err := hc.store.Users().Get(ctx, 0); err != nil && !errors.Is(err, model.ErrNotFound) {
		return err
	}
	return nil
}
