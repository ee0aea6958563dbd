package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/savagerise/storefront/internal/auth"
	"github.com/savagerise/storefront/internal/cart"
	"github.com/savagerise/storefront/internal/checkout"
	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/metrics"
	"github.com/savagerise/storefront/internal/promo"
	"github.com/savagerise/storefront/internal/storage"

	"github.com/google/uuid"
)

// ErrUnavailable 会话管理器未初始化
var ErrUnavailable = errors.New("session manager unavailable")

// Remote 会话组件依赖的远端接口
type Remote interface {
	promo.Validator
	auth.Remote
}

// Session 单个访客的购物车、优惠码与登录状态
type Session struct {
	ID    string
	Cart  *cart.Store
	Promo *promo.Reconciler
	Auth  *auth.Session

	storage *storage.Namespaced
	owner   *entry

	mu       sync.Mutex
	lastSeen time.Time
}

// Checkout 下单视图
func (s *Session) Checkout() checkout.Session {
	return checkout.Session{Cart: s.Cart, Promo: s.Promo, Auth: s.Auth}
}

// LastSeen 最近一次访问时间
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) close() {
	s.Promo.Close()
}

type entry struct {
	once    sync.Once
	session atomic.Pointer[Session]
	// refs 正在处理的请求数，由 Manager.mu 保护
	refs int
}

// Manager 内存中的活跃会话，状态持久化在 sess:<id>: 命名空间
type Manager struct {
	store   storage.Store
	remote  Remote
	metrics *metrics.Storefront
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

// Option 管理器可选项
type Option func(*Manager)

// WithMetrics 指定指标
func WithMetrics(m *metrics.Storefront) Option {
	return func(mgr *Manager) {
		mgr.metrics = m
	}
}

// WithClock 指定时钟
func WithClock(now func() time.Time) Option {
	return func(mgr *Manager) {
		if now != nil {
			mgr.now = now
		}
	}
}

// NewManager 创建会话管理器
func NewManager(store storage.Store, remote Remote, idleTTL time.Duration, opts ...Option) *Manager {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	m := &Manager{
		store:    store,
		remote:   remote,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewID 生成会话ID
func NewID() string {
	return uuid.NewString()
}

// ValidID 校验会话ID格式
func ValidID(id string) bool {
	_, err := uuid.Parse(strings.TrimSpace(id))
	return err == nil
}

// Resolve 获取会话；ID 缺失或非法时创建新会话。created 表示返回了新ID。
// 使用完毕后必须调用 Release，使用中的会话不会被 Sweep 回收。
func (m *Manager) Resolve(ctx context.Context, id string) (*Session, bool, error) {
	if m == nil {
		return nil, false, ErrUnavailable
	}
	id = strings.ToLower(strings.TrimSpace(id))
	created := false
	if !ValidID(id) {
		id = NewID()
		created = true
	}

	m.mu.Lock()
	e, ok := m.sessions[id]
	if !ok {
		e = &entry{}
		m.sessions[id] = e
	}
	e.refs++
	active := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		m.metrics.SetActiveSessions(active)
	}

	e.once.Do(func() {
		sess := m.bootstrap(ctx, id)
		sess.owner = e
		e.session.Store(sess)
	})
	sess := e.session.Load()
	sess.touch(m.now())
	return sess, created, nil
}

// Release 结束一次使用并刷新访问时间
func (m *Manager) Release(sess *Session) {
	if m == nil || sess == nil {
		return
	}
	sess.touch(m.now())
	m.mu.Lock()
	if sess.owner != nil && sess.owner.refs > 0 {
		sess.owner.refs--
	}
	m.mu.Unlock()
}

// bootstrap 恢复顺序：购物车 → 登录令牌 → 优惠码
func (m *Manager) bootstrap(ctx context.Context, id string) *Session {
	ns := storage.Namespace(m.store, storage.SessionNamespace(id))
	log := logger.Component("session", id)

	cartStore := cart.NewStore(ns,
		cart.WithLogger(logger.Component("cart", id)),
		cart.WithMetrics(m.metrics),
	)
	cartStore.Hydrate(ctx)

	authSession := auth.NewSession(m.remote, ns, auth.WithLogger(logger.Component("auth", id)))
	reconciler := promo.New(cartStore, m.remote, ns,
		promo.WithLogger(logger.Component("promo", id)),
		promo.WithMetrics(m.metrics),
		promo.WithToken(authSession.Token),
	)
	authSession.Observe(reconciler.SetAuthenticated)
	authSession.Restore(ctx)
	reconciler.Restore(ctx)

	log.Infow("session_started", "cart_items", cartStore.Snapshot().ItemCount, "authenticated", authSession.IsAuthenticated())
	return &Session{
		ID:       id,
		Cart:     cartStore,
		Promo:    reconciler,
		Auth:     authSession,
		storage:  ns,
		lastSeen: m.now(),
	}
}

// Reset 清空会话的全部持久化状态并释放内存会话
func (m *Manager) Reset(ctx context.Context, id string) error {
	if m == nil {
		return ErrUnavailable
	}
	id = strings.ToLower(strings.TrimSpace(id))
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	active := len(m.sessions)
	m.mu.Unlock()

	if ok {
		if sess := e.session.Load(); sess != nil {
			sess.close()
		}
	}
	m.metrics.SetActiveSessions(active)
	_, err := storage.Namespace(m.store, storage.SessionNamespace(id)).Purge(ctx)
	return err
}

// Len 内存中的会话数
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep 释放空闲超时且未被请求占用的内存会话，持久化状态保留
func (m *Manager) Sweep() int {
	if m == nil {
		return 0
	}
	cutoff := m.now().Add(-m.idleTTL)
	var idle []*Session

	m.mu.Lock()
	for id, e := range m.sessions {
		sess := e.session.Load()
		if sess == nil || e.refs > 0 {
			continue
		}
		if sess.LastSeen().Before(cutoff) {
			idle = append(idle, sess)
			delete(m.sessions, id)
		}
	}
	active := len(m.sessions)
	m.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	m.metrics.SetActiveSessions(active)
	return len(idle)
}

// Close 释放全部会话
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()
	for _, e := range all {
		if sess := e.session.Load(); sess != nil {
			sess.close()
		}
	}
	m.metrics.SetActiveSessions(0)
}
