package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured 存储后端未初始化
var ErrNotConfigured = errors.New("storage backend not configured")

// Store 会话键值持久化端口
type Store interface {
	// Get 读取键值，不存在时 ok 为 false
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set 写入或覆盖键值
	Set(ctx context.Context, key, value string) error
	// Remove 删除键值，不存在时不报错
	Remove(ctx context.Context, key string) error
}

// Purger 支持按前缀批量清理的后端
type Purger interface {
	Purge(ctx context.Context, prefix string) (int64, error)
}

// Namespaced 在底层存储上叠加键前缀
type Namespaced struct {
	inner  Store
	prefix string
}

// Namespace 创建带前缀的存储视图
func Namespace(inner Store, prefix string) *Namespaced {
	return &Namespaced{inner: inner, prefix: strings.TrimSpace(prefix)}
}

// SessionNamespace 返回会话命名空间前缀 sess:<id>:
func SessionNamespace(sessionID string) string {
	return fmt.Sprintf("sess:%s:", strings.TrimSpace(sessionID))
}

// Prefix 返回命名空间前缀
func (n *Namespaced) Prefix() string {
	return n.prefix
}

// Get 读取命名空间内的键
func (n *Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	if n == nil || n.inner == nil {
		return "", false, ErrNotConfigured
	}
	return n.inner.Get(ctx, n.prefix+key)
}

// Set 写入命名空间内的键
func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	if n == nil || n.inner == nil {
		return ErrNotConfigured
	}
	return n.inner.Set(ctx, n.prefix+key, value)
}

// Remove 删除命名空间内的键
func (n *Namespaced) Remove(ctx context.Context, key string) error {
	if n == nil || n.inner == nil {
		return ErrNotConfigured
	}
	return n.inner.Remove(ctx, n.prefix+key)
}

// Purge 清空整个命名空间（后端不支持时返回 0）
func (n *Namespaced) Purge(ctx context.Context) (int64, error) {
	if n == nil || n.inner == nil {
		return 0, ErrNotConfigured
	}
	purger, ok := n.inner.(Purger)
	if !ok || n.prefix == "" {
		return 0, nil
	}
	return purger.Purge(ctx, n.prefix)
}
