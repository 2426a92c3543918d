package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"
)

type fakeChecker struct {
	name    string
	healthy atomic.Bool
}

func (f *fakeChecker) Name() string                           { return f.name }
func (f *fakeChecker) IsHealthy() bool                        { return f.healthy.Load() }
func (f *fakeChecker) Start(context.Context, time.Duration) {}

func TestService_Transitions(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())

	a := &fakeChecker{name: "a"}
	b := &fakeChecker{name: "b"}
	a.healthy.Store(true)
	b.healthy.Store(true)

	svc := NewService(zerolog.Nop(), a, b)
	done := make(chan struct{})
	go func() {
		svc.Start(ctx, 10*time.Millisecond)
		close(done)
	}()

	waitTrue(t, svc.IsHealthy)

	b.healthy.Store(false)
	waitTrue(t, func() bool { return !svc.IsHealthy() })
	if got := svc.Components(); got["a"] != true || got["b"] != false {
		t.Fatalf("unexpected components: %v", got)
	}

	b.healthy.Store(true)
	waitTrue(t, svc.IsHealthy)

	cancel()
	<-done
}

func TestService_NoDepsIsHealthy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := NewService(zerolog.Nop())
	go svc.Start(ctx, time.Hour)
	waitTrue(t, svc.IsHealthy)
}

func TestProbe_FollowsProbeResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fail atomic.Bool
	var flag atomic.Bool
	go Probe(ctx, 10*time.Millisecond, time.Second, &flag, zerolog.Nop(), "fake", func(context.Context) error {
		if fail.Load() {
			return errors.New("down")
		}
		return nil
	})

	waitTrue(t, flag.Load)
	fail.Store(true)
	waitTrue(t, func() bool { return !flag.Load() })
}

func waitTrue(t *testing.T, pred func() bool) {
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
