package app

import (
	"errors"

	"github.com/savagerise/storefront/internal/cache"
	"github.com/savagerise/storefront/internal/config"
	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/provider"
	"github.com/savagerise/storefront/internal/router"
	"github.com/savagerise/storefront/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	return BuildRunnerWith(cfg, container)
}

// BuildRunnerWith 使用已初始化的容器构建服务运行器
func BuildRunnerWith(cfg *config.Config, container *provider.Container) (*Runner, error) {
	if cfg == nil || container == nil {
		return nil, errors.New("config or container is nil")
	}

	// HTTP 服务
	engine := router.SetupRouter(cfg, container)
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	httpService := NewHTTPService(addr, engine)

	// 空闲会话回收
	sweeper, err := worker.NewService(container.Sessions, cfg.Session.SweepInterval())
	if err != nil {
		return nil, err
	}

	return NewRunner(httpService, sweeper), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config)
	if err != nil {
		return err
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warnw("app_close_redis_failed", "error", err)
		}
	}()

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "api", opts.Config.API.BaseURL, "storage", opts.Config.Storage.Driver)
	return RunWithOptions(runner, opts)
}
