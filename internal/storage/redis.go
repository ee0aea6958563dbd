package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPurgeBatch = 200

// RedisStore 基于 Redis 的持久化
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 创建 Redis 存储，ttl<=0 表示不过期
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "sf"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) buildKey(key string) string {
	return fmt.Sprintf("%s:kv:%s", s.prefix, key)
}

// Get 读取键值
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, ErrNotConfigured
	}
	value, err := s.client.Get(ctx, s.buildKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set 写入键值（每次写入刷新过期时间）
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.client == nil {
		return ErrNotConfigured
	}
	return s.client.Set(ctx, s.buildKey(key), value, s.ttl).Err()
}

// Remove 删除键值
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return ErrNotConfigured
	}
	return s.client.Del(ctx, s.buildKey(key)).Err()
}

// Purge 按前缀扫描并删除
func (s *RedisStore) Purge(ctx context.Context, prefix string) (int64, error) {
	if s == nil || s.client == nil {
		return 0, ErrNotConfigured
	}
	var (
		cursor  uint64
		removed int64
	)
	pattern := s.buildKey(escapeGlob(prefix)) + "*"
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, redisPurgeBatch).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += n
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

func escapeGlob(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return replacer.Replace(value)
}
