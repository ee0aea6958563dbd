package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/savagerise/storefront/internal/config"
	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/models"
	"github.com/savagerise/storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

// Open 按配置创建持久化后端
func Open(cfg config.StorageConfig, redisClient *redis.Client, redisPrefix string) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case constants.StorageDriverMemory:
		return NewMemory(), nil
	case "", constants.StorageDriverSQLite, constants.StorageDriverPostgres, "postgresql":
		if err := models.InitDB(driver, cfg.DSN, models.DBPoolConfig{
			MaxOpenConns:           cfg.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Pool.ConnMaxIdleTimeSeconds,
		}); err != nil {
			return nil, fmt.Errorf("open %s storage: %w", driver, err)
		}
		if err := models.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("migrate storage: %w", err)
		}
		return NewSQLStore(repository.NewKVRepository(models.DB)), nil
	case constants.StorageDriverRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis storage requires redis.enabled: %w", ErrNotConfigured)
		}
		ttl := time.Duration(cfg.RedisTTLHours) * time.Hour
		return NewRedisStore(redisClient, redisPrefix, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
