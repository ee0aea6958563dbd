package storage

import (
	"context"
	"strings"
	"sync"
)

// Memory 进程内存储，用于测试与无持久化部署
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory 创建内存存储
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get 读取键值
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok, nil
}

// Set 写入键值
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Remove 删除键值
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Purge 删除指定前缀下的全部键
func (m *Memory) Purge(_ context.Context, prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
			removed++
		}
	}
	return removed, nil
}

// Len 当前键数量
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
