package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingPool struct {
	sweeps atomic.Int32
	closed atomic.Bool
}

func (p *countingPool) Sweep() int {
	p.sweeps.Add(1)
	return 1
}

func (p *countingPool) Close() {
	p.closed.Store(true)
}

func TestNewServiceRequiresPool(t *testing.T) {
	if _, err := NewService(nil, time.Second); err == nil {
		t.Fatalf("expected error for nil pool")
	}
}

func TestServiceSweepsUntilStopped(t *testing.T) {
	pool := &countingPool{}
	svc, err := NewService(pool, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for pool.sweeps.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("sweeper did not tick, sweeps=%d", pool.sweeps.Load())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("start returned error: %v", err)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := svc.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if !pool.closed.Load() {
		t.Fatalf("expected pool to be closed on stop")
	}
}
