package storage

import (
	"context"

	"github.com/savagerise/storefront/internal/repository"
)

// SQLStore 基于 GORM 键值表的持久化（sqlite / postgres）
type SQLStore struct {
	repo repository.KVRepository
}

// NewSQLStore 创建数据库存储
func NewSQLStore(repo repository.KVRepository) *SQLStore {
	return &SQLStore{repo: repo}
}

// Get 读取键值
func (s *SQLStore) Get(_ context.Context, key string) (string, bool, error) {
	if s == nil || s.repo == nil {
		return "", false, ErrNotConfigured
	}
	entry, err := s.repo.Get(key)
	if err != nil {
		return "", false, err
	}
	if entry == nil {
		return "", false, nil
	}
	return entry.Value, true, nil
}

// Set 写入键值
func (s *SQLStore) Set(_ context.Context, key, value string) error {
	if s == nil || s.repo == nil {
		return ErrNotConfigured
	}
	return s.repo.Put(key, value)
}

// Remove 删除键值
func (s *SQLStore) Remove(_ context.Context, key string) error {
	if s == nil || s.repo == nil {
		return ErrNotConfigured
	}
	return s.repo.Delete(key)
}

// Purge 删除指定前缀下的全部键
func (s *SQLStore) Purge(_ context.Context, prefix string) (int64, error) {
	if s == nil || s.repo == nil {
		return 0, ErrNotConfigured
	}
	return s.repo.DeleteByPrefix(prefix)
}
