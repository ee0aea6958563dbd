package worker

import (
	"context"
	"errors"
	"time"

	"github.com/savagerise/storefront/internal/logger"
)

const defaultSweepInterval = time.Minute

// Sweeper 可被周期清理的会话池
type Sweeper interface {
	Sweep() int
	Close()
}

// Service 空闲会话回收服务
type Service struct {
	name     string
	sessions Sweeper
	interval time.Duration
	done     chan struct{}
}

// NewService 创建回收服务
func NewService(sessions Sweeper, interval time.Duration) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("session pool is nil")
	}
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Service{
		name:     "session-sweeper",
		sessions: sessions,
		interval: interval,
		done:     make(chan struct{}),
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "session-sweeper"
	}
	return s.name
}

// Start 启动服务，阻塞直到 ctx 结束
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.sessions == nil {
		return errors.New("sweeper not initialized")
	}
	defer close(s.done)
	s.runSweepLoop(ctx)
	return nil
}

// Stop 停止服务并释放全部会话
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.sessions == nil {
		return nil
	}
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.sessions.Close()
	return nil
}

func (s *Service) runSweepLoop(ctx context.Context) {
	runOnce := func() {
		if released := s.sessions.Sweep(); released > 0 {
			logger.Infow("worker_sessions_swept", "released", released)
		}
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
