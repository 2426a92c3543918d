// Package health tracks cached component health for the service. Checkers
// probe in the background; readers only load atomics.
package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Checker is implemented by component-level checkers (store, llm).
type Checker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// Pinger can be implemented by components to expose a cheap probe.
// Ping must return nil when the component is healthy.
type Pinger interface {
	HealthPing(ctx context.Context) error
}

// Service folds component checkers into a single health flag.
type Service struct {
	healthy atomic.Bool
	deps    []Checker
	log     zerolog.Logger
}

func NewService(log zerolog.Logger, deps ...Checker) *Service {
	return &Service{deps: deps, log: log}
}

// IsHealthy returns the cached service health.
func (s *Service) IsHealthy() bool { return s.healthy.Load() }

// Components reports each dependency's cached state by name.
func (s *Service) Components() map[string]bool {
	out := make(map[string]bool, len(s.deps))
	for _, d := range s.deps {
		out[d.Name()] = d.IsHealthy()
	}
	return out
}

// Start re-evaluates dependency health every interval until ctx is done.
// Transitions are logged once.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := false
	eval := func() {
		up := true
		for _, d := range s.deps {
			if !d.IsHealthy() {
				up = false
				break
			}
		}
		s.healthy.Store(up)
		if up != prev {
			if up {
				s.log.Info().Msg("service health: UP")
			} else {
				s.log.Error().Msg("service health: DOWN")
			}
			prev = up
		}
	}

	eval()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			eval()
		}
	}
}

// Probe runs fn every interval with a per-call timeout and stores the result
// in flag. It is the loop shared by component checkers.
func Probe(ctx context.Context, interval, timeout time.Duration, flag *atomic.Bool, log zerolog.Logger, name string, fn func(context.Context) error) {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	run := func() {
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := fn(checkCtx); err != nil {
			if flag.Swap(false) {
				log.Error().Err(err).Str("checker", name).Msg("health check failed")
			}
			return
		}
		if !flag.Swap(true) {
			log.Info().Str("checker", name).Msg("health check passed")
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
