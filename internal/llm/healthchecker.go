package llm

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/health"
)

// HealthChecker monitors a provider. It prefers the provider's own ping and
// otherwise asks for a one-token completion.
type HealthChecker struct {
	client       Client
	healthy      atomic.Bool
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewHealthChecker(c Client, log zerolog.Logger, probeTimeout time.Duration) *HealthChecker {
	return &HealthChecker{client: c, log: log, probeTimeout: probeTimeout}
}

func (c *HealthChecker) Name() string    { return "llm" }
func (c *HealthChecker) IsHealthy() bool { return c.healthy.Load() }

func (c *HealthChecker) Start(ctx context.Context, interval time.Duration) {
	health.Probe(ctx, interval, c.probeTimeout, &c.healthy, c.log, c.Name(), c.probe)
}

func (c *HealthChecker) probe(ctx context.Context) error {
	if p, ok := c.client.(health.Pinger); ok {
		return p.HealthPing(ctx)
	}
	_, err := c.client.Complete(ctx, Request{
		Messages:  []Message{{Role: RoleUser, Content: "ping"}},
		MaxTokens: 1,
	})
	return err
}
