package provider

import (
	"fmt"

	"github.com/savagerise/storefront/internal/apiclient"
	"github.com/savagerise/storefront/internal/cache"
	"github.com/savagerise/storefront/internal/catalog"
	"github.com/savagerise/storefront/internal/checkout"
	"github.com/savagerise/storefront/internal/config"
	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/metrics"
	"github.com/savagerise/storefront/internal/pricing"
	"github.com/savagerise/storefront/internal/session"
	"github.com/savagerise/storefront/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// 基础设施
	Registry *prometheus.Registry
	Metrics  *metrics.Storefront
	Storage  storage.Store

	// 远端
	API *apiclient.Client

	// Services
	Catalog  *catalog.Service
	Checkout *checkout.Service
	Sessions *session.Manager
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}
	c.initMetrics()

	// 1. 初始化持久化
	store, err := storage.Open(cfg.Storage, cache.Client(), cache.Prefix())
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	c.Storage = store

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewContainerWith 使用给定持久化与远端客户端创建容器（测试与嵌入场景）
func NewContainerWith(cfg *config.Config, store storage.Store, api *apiclient.Client) (*Container, error) {
	c := &Container{Config: cfg, Storage: store, API: api}
	c.initMetrics()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initMetrics() {
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.New(c.Registry)
}

func (c *Container) initServices() error {
	policy, err := pricing.PolicyFromConfig(c.Config.Shop)
	if err != nil {
		return fmt.Errorf("invalid shop config: %w", err)
	}
	if c.API == nil {
		c.API = apiclient.New(c.Config.API.BaseURL, c.Config.API.Timeout(), c.Metrics)
	}
	c.Catalog = catalog.NewService(c.API, c.Config.Catalog.CacheTTL())
	c.Checkout = checkout.NewService(c.API, policy, c.Metrics)
	c.Sessions = session.NewManager(c.Storage, c.API, c.Config.Session.IdleTTL(), session.WithMetrics(c.Metrics))
	return nil
}
