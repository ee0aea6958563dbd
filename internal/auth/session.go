package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/savagerise/storefront/internal/apiclient"
	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/models"
	"github.com/savagerise/storefront/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrTokenExpired       = errors.New("access token expired")
)

// Remote 远端认证接口
type Remote interface {
	Login(ctx context.Context, email, password string) (*models.AuthTokens, error)
	Signup(ctx context.Context, payload models.UserCreate) (*models.User, error)
	GetProfile(ctx context.Context, token string) (*models.User, error)
}

// Observer 登录状态变化回调，在会话锁之外调用
type Observer func(authenticated bool)

// Session 单会话登录状态
type Session struct {
	mu        sync.Mutex
	remote    Remote
	storage   storage.Store
	token     string
	user      *models.User
	observers []Observer
	log       *zap.SugaredLogger
	now       func() time.Time
}

// Option 可选项
type Option func(*Session)

// WithLogger 指定日志
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock 指定时钟
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession 创建登录会话
func NewSession(remote Remote, st storage.Store, opts ...Option) *Session {
	s := &Session{
		remote:  remote,
		storage: st,
		log:     logger.Component("auth", ""),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Observe 注册登录状态观察者
func (s *Session) Observe(fn Observer) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Token 当前访问令牌
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.token
}

// User 当前用户（副本）
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated 是否已登录
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Login 登录并加载用户资料
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	tokens, err := s.remote.Login(ctx, email, password)
	if err != nil {
		if status := apiclient.StatusOf(err); status == http.StatusUnauthorized || status == http.StatusBadRequest {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	user, err := s.remote.GetProfile(ctx, tokens.AccessToken)
	if err != nil {
		s.log.Warnw("auth_profile_after_login_failed", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.token = tokens.AccessToken
	s.user = user
	s.persistTokenLocked(ctx)
	s.mu.Unlock()

	s.log.Infow("auth_login_success", "user_id", user.ID)
	s.notify(true)
	return s.User(), nil
}

// Signup 注册账号（需验证邮箱后才能登录，不改变会话状态）
func (s *Session) Signup(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	return s.remote.Signup(ctx, models.UserCreate{
		Email:    email,
		Password: password,
		FullName: strings.TrimSpace(fullName),
	})
}

// Logout 退出登录并删除令牌
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.user != nil
	s.token = ""
	s.user = nil
	s.eraseTokenLocked(ctx)
	s.mu.Unlock()

	if wasAuthenticated {
		s.log.Infow("auth_logout")
		s.notify(false)
	}
}

// Restore 会话开始时恢复令牌：已过期或被远端拒绝时删除
func (s *Session) Restore(ctx context.Context) {
	if s.storage == nil {
		return
	}
	token, ok, err := s.storage.Get(ctx, constants.StorageKeyToken)
	if err != nil {
		s.log.Warnw("auth_restore_read_failed", "error", err)
		return
	}
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return
	}
	if err := s.checkExpiry(token); err != nil {
		s.log.Infow("auth_restore_token_dropped", "reason", err.Error())
		s.mu.Lock()
		s.eraseTokenLocked(ctx)
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	if _, err := s.RefreshProfile(ctx); err != nil {
		s.log.Infow("auth_restore_failed", "error", err)
	}
}

// RefreshProfile 重新加载用户资料；令牌被拒绝时退出登录
func (s *Session) RefreshProfile(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	token := s.token
	wasAuthenticated := s.user != nil
	s.mu.Unlock()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := s.remote.GetProfile(ctx, token)
	if err != nil {
		if apiclient.IsTransport(err) {
			return nil, err
		}
		s.mu.Lock()
		s.token = ""
		s.user = nil
		s.eraseTokenLocked(ctx)
		s.mu.Unlock()
		if wasAuthenticated {
			s.notify(false)
		}
		return nil, err
	}

	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	s.user = user
	s.mu.Unlock()
	if !wasAuthenticated {
		s.notify(true)
	}
	return s.User(), nil
}

// checkExpiry 读取 JWT exp（不校验签名，签名由远端校验）；非 JWT 令牌直接放行
func (s *Session) checkExpiry(token string) error {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.now()) {
		return ErrTokenExpired
	}
	return nil
}

func (s *Session) notify(authenticated bool) {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()
	for _, fn := range observers {
		fn(authenticated)
	}
}

func (s *Session) persistTokenLocked(ctx context.Context) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Set(ctx, constants.StorageKeyToken, s.token); err != nil {
		s.log.Warnw("auth_token_persist_failed", "error", err)
	}
}

func (s *Session) eraseTokenLocked(ctx context.Context) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Remove(ctx, constants.StorageKeyToken); err != nil {
		s.log.Warnw("auth_token_remove_failed", "error", err)
	}
}
