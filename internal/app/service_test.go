package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingService struct {
	name     string
	startErr error
	stopErr  error
	order    *stopOrder
	mu       sync.Mutex
	stopped  bool
}

type stopOrder struct {
	mu    sync.Mutex
	names []string
}

func (o *stopOrder) add(name string) {
	o.mu.Lock()
	o.names = append(o.names, name)
	o.mu.Unlock()
}

func (s *recordingService) Name() string { return s.name }

func (s *recordingService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *recordingService) Stop(context.Context) error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	if s.order != nil {
		s.order.add(s.name)
	}
	return s.stopErr
}

func (s *recordingService) wasStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func TestRunnerStopsAllOnServiceError(t *testing.T) {
	boom := errors.New("listen failed")
	failing := &recordingService{name: "http", startErr: boom}
	idle := &recordingService{name: "session-sweeper"}

	err := NewRunner(failing, idle).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected start error, got %v", err)
	}
	if !failing.wasStopped() || !idle.wasStopped() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	svc := &recordingService{name: "http"}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	if err := NewRunner(svc).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancel should not be reported as error, got %v", err)
	}
	if !svc.wasStopped() {
		t.Fatalf("service should be stopped")
	}
}

func TestBuildRunnerRequiresConfig(t *testing.T) {
	if _, err := BuildRunner(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error for empty runner")
	}
}

func TestRunnerStopsInRegistrationOrder(t *testing.T) {
	order := &stopOrder{}
	httpSvc := &recordingService{name: "http", order: order}
	sweeper := &recordingService{name: "session-sweeper", order: order}
	runner := NewRunner(httpSvc, nil, sweeper)

	if got := runner.Names(); len(got) != 2 {
		t.Fatalf("nil service should be dropped, got %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)
	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order.names) != 2 || order.names[0] != "http" || order.names[1] != "session-sweeper" {
		t.Fatalf("unexpected stop order: %v", order.names)
	}
}

func TestRunnerReportsStopErrors(t *testing.T) {
	closeErr := errors.New("close failed")
	svc := &recordingService{name: "session-sweeper", stopErr: closeErr}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	if err := NewRunner(svc).Run(ctx, time.Second, nil); !errors.Is(err, closeErr) {
		t.Fatalf("expected stop error, got %v", err)
	}
}
