package llm

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type scriptedClient struct {
	fail atomic.Bool
}

func (s *scriptedClient) Complete(context.Context, Request) (string, error) {
	if s.fail.Load() {
		return "", errors.New("unavailable")
	}
	return "pong", nil
}

func TestHealthChecker_TracksProvider(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &scriptedClient{}
	hc := NewHealthChecker(c, zerolog.Nop(), time.Second)
	go hc.Start(ctx, 10*time.Millisecond)

	waitFor(t, hc.IsHealthy)
	c.fail.Store(true)
	waitFor(t, func() bool { return !hc.IsHealthy() })
}

func TestHealthChecker_DisabledIsUnhealthy(t *testing.T) {
	hc := NewHealthChecker(Disabled{}, zerolog.Nop(), time.Second)
	if err := hc.probe(context.Background()); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func waitFor(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}
