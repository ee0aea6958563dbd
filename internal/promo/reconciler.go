package promo

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/savagerise/storefront/internal/apiclient"
	"github.com/savagerise/storefront/internal/cart"
	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/metrics"
	"github.com/savagerise/storefront/internal/models"
	"github.com/savagerise/storefront/internal/storage"

	"go.uber.org/zap"
)

var (
	ErrEmptyCode = errors.New("promo code is empty")
	ErrCartEmpty = errors.New("cart is empty")
	ErrClosed    = errors.New("promo reconciler closed")
)

// Status 优惠码状态
type Status string

const (
	StatusIdle        Status = constants.PromoStatusIdle
	StatusValidating  Status = constants.PromoStatusValidating
	StatusApplied     Status = constants.PromoStatusApplied
	StatusRejected    Status = constants.PromoStatusRejected
	StatusUnavailable Status = constants.PromoStatusUnavailable
)

const (
	triggerApply       = "apply"
	triggerCartChanged = "cart_changed"
	triggerAuth        = "auth_changed"
	triggerRestore     = "restore"
)

// Validator 远端优惠码校验
type Validator interface {
	ApplyPromo(ctx context.Context, token string, req models.PromoApplyRequest) (*models.PromoApplyResponse, error)
}

// CartSource 购物车快照来源
type CartSource interface {
	Snapshot() cart.Snapshot
	Subscribe(fn cart.Listener) func()
}

// TokenFunc 返回当前访问令牌，未登录时为空
type TokenFunc func() string

// State 优惠码当前状态
type State struct {
	Code          string       `json:"code,omitempty"`
	Status        Status       `json:"status"`
	Discount      models.Money `json:"discount"`
	Reason        string       `json:"reason,omitempty"`
	LoginRequired bool         `json:"login_required"`
}

// ActiveDiscount 仅在 Applied 状态下返回优惠金额
func (s State) ActiveDiscount() models.Money {
	if s.Status != StatusApplied {
		return models.Money{}
	}
	return s.Discount
}

// ticket 一次校验发起时捕获的上下文
type ticket struct {
	code      string
	signature string
	items     []models.OrderItem
	epoch     uint64
	authGen   uint64
	trigger   string
}

// Reconciler 单会话优惠码协调器
type Reconciler struct {
	mu            sync.Mutex
	validator     Validator
	storage       storage.Store
	token         TokenFunc
	log           *zap.SugaredLogger
	metrics       *metrics.Storefront
	state         State
	latest        cart.Snapshot
	lastValidated string
	epoch         uint64
	authGen       uint64
	authenticated bool
	closed        bool
	unsubscribe   func()
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Option 可选项
type Option func(*Reconciler)

// WithLogger 指定日志
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Reconciler) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMetrics 指定指标
func WithMetrics(m *metrics.Storefront) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// WithToken 指定令牌来源
func WithToken(fn TokenFunc) Option {
	return func(r *Reconciler) {
		if fn != nil {
			r.token = fn
		}
	}
}

// New 创建协调器并订阅购物车变更
func New(source CartSource, validator Validator, st storage.Store, opts ...Option) *Reconciler {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Reconciler{
		validator: validator,
		storage:   st,
		token:     func() string { return "" },
		log:       logger.Component("promo", ""),
		state:     State{Status: StatusIdle},
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.unsubscribe = source.Subscribe(r.onCartChanged)
	snap := source.Snapshot()
	r.mu.Lock()
	if snap.Version >= r.latest.Version {
		r.latest = snap
	}
	r.mu.Unlock()
	return r
}

// NormalizeCode 去除首尾空白并转为大写
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// State 当前状态
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Apply 用户提交优惠码，同步等待校验结果
func (r *Reconciler) Apply(ctx context.Context, code string) (State, error) {
	code = NormalizeCode(code)
	if code == "" {
		return r.State(), ErrEmptyCode
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return State{Status: StatusIdle}, ErrClosed
	}
	if r.latest.State.IsEmpty() {
		r.mu.Unlock()
		return r.State(), ErrCartEmpty
	}
	r.epoch++
	t := r.beginLocked(code, triggerApply)
	r.mu.Unlock()

	return r.run(ctx, t), nil
}

// Revalidate 使用当前优惠码重新校验（同步），没有优惠码时无操作
func (r *Reconciler) Revalidate(ctx context.Context) State {
	r.mu.Lock()
	if r.closed || r.state.Code == "" {
		defer r.mu.Unlock()
		return r.state
	}
	if r.latest.State.IsEmpty() {
		r.resetLocked(ctx)
		defer r.mu.Unlock()
		return r.state
	}
	t := r.beginLocked(r.state.Code, triggerCartChanged)
	r.mu.Unlock()
	return r.run(ctx, t)
}

// Remove 无条件清除内存与持久化中的优惠码
func (r *Reconciler) Remove(ctx context.Context) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked(ctx)
	r.log.Infow("promo_removed")
	return r.state
}

// Restore 会话开始时恢复已保存的优惠码并异步重新校验
func (r *Reconciler) Restore(ctx context.Context) {
	if r.storage == nil {
		return
	}
	saved, ok, err := r.storage.Get(ctx, constants.StorageKeyPromoCode)
	if err != nil {
		r.log.Warnw("promo_restore_read_failed", "error", err)
		return
	}
	code := NormalizeCode(saved)
	if !ok || code == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if r.latest.State.IsEmpty() {
		r.resetLocked(ctx)
		r.log.Infow("promo_restore_cleared_empty_cart", "code", code)
		return
	}
	r.epoch++
	t := r.beginLocked(code, triggerRestore)
	r.spawnLocked(t)
}

// SetAuthenticated 登录状态变化；未登录 → 已登录且存在优惠码时自动重新校验。
// 每次变化都会使之前以旧身份发出的校验失效。
func (r *Reconciler) SetAuthenticated(authenticated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.authenticated == authenticated {
		return
	}
	r.authenticated = authenticated
	r.authGen++
	if r.closed || r.state.Code == "" || r.latest.State.IsEmpty() {
		return
	}
	if !authenticated && r.state.Status != StatusValidating {
		return
	}
	t := r.beginLocked(r.state.Code, triggerAuth)
	r.spawnLocked(t)
}

// Wait 等待所有后台校验结束
func (r *Reconciler) Wait() {
	r.wg.Wait()
}

// Close 取消订阅并等待后台校验结束
func (r *Reconciler) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	unsubscribe := r.unsubscribe
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	r.cancel()
	r.wg.Wait()
}

// onCartChanged 在购物车锁内被调用，只能获取本协调器的锁
func (r *Reconciler) onCartChanged(snap cart.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if snap.Version < r.latest.Version {
		return
	}
	r.latest = snap
	if r.closed || r.state.Code == "" {
		return
	}
	if snap.State.IsEmpty() {
		r.resetLocked(r.ctx)
		r.log.Infow("promo_cleared_empty_cart")
		return
	}
	if snap.Signature == r.lastValidated {
		return
	}
	t := r.beginLocked(r.state.Code, triggerCartChanged)
	r.spawnLocked(t)
}

func (r *Reconciler) beginLocked(code, trigger string) ticket {
	t := ticket{
		code:      code,
		signature: r.latest.Signature,
		items:     r.latest.State.OrderItems(),
		epoch:     r.epoch,
		authGen:   r.authGen,
		trigger:   trigger,
	}
	r.lastValidated = t.signature
	r.state = State{Code: code, Status: StatusValidating}
	return t
}

func (r *Reconciler) spawnLocked(t ticket) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(r.ctx, t)
	}()
}

// run 发起远端校验并提交结果，返回提交后的状态
func (r *Reconciler) run(ctx context.Context, t ticket) State {
	req := models.NewPromoApplyRequest(t.code, t.items)
	resp, err := r.validator.ApplyPromo(ctx, r.token(), req)

	r.mu.Lock()
	defer r.mu.Unlock()
	if t.epoch != r.epoch || t.authGen != r.authGen || t.signature != r.latest.Signature || r.state.Code != t.code {
		r.metrics.IncPromoStale()
		r.log.Debugw("promo_validation_stale",
			"code", t.code,
			"trigger", t.trigger,
			"auth_changed", t.authGen != r.authGen,
			"signature", t.signature,
			"current_signature", r.latest.Signature,
		)
		return r.state
	}
	r.commitLocked(ctx, t, resp, err)
	r.metrics.IncPromoValidation(t.trigger, string(r.state.Status))
	return r.state
}

func (r *Reconciler) commitLocked(ctx context.Context, t ticket, resp *models.PromoApplyResponse, err error) {
	if err == nil && resp == nil {
		err = apiclient.ErrResponseInvalid
	}
	if err != nil {
		r.state = State{Code: t.code, Status: StatusUnavailable}
		r.lastValidated = ""
		r.log.Warnw("promo_validation_unavailable", "code", t.code, "trigger", t.trigger, "error", err)
		return
	}

	if resp.Valid {
		discount := models.Money{}
		if resp.DiscountValue != nil && !resp.DiscountValue.IsNegative() {
			discount = *resp.DiscountValue
		}
		r.state = State{Code: t.code, Status: StatusApplied, Discount: discount}
		r.persistLocked(ctx, t.code)
		r.log.Infow("promo_applied", "code", t.code, "trigger", t.trigger, "discount", discount.String())
		return
	}

	reason := strings.TrimSpace(resp.Reason)
	if reason == "" {
		reason = constants.PromoReasonInvalid
	}
	r.state = State{
		Code:          t.code,
		Status:        StatusRejected,
		Reason:        reason,
		LoginRequired: reason == constants.PromoReasonLoginRequired,
	}
	r.eraseLocked(ctx)
	r.log.Infow("promo_rejected", "code", t.code, "trigger", t.trigger, "reason", reason)
}

func (r *Reconciler) resetLocked(ctx context.Context) {
	r.epoch++
	r.lastValidated = ""
	r.state = State{Status: StatusIdle}
	r.eraseLocked(ctx)
}

func (r *Reconciler) persistLocked(ctx context.Context, code string) {
	if r.storage == nil {
		return
	}
	if err := r.storage.Set(ctx, constants.StorageKeyPromoCode, code); err != nil {
		r.log.Warnw("promo_persist_failed", "code", code, "error", err)
	}
}

func (r *Reconciler) eraseLocked(ctx context.Context) {
	if r.storage == nil {
		return
	}
	if err := r.storage.Remove(ctx, constants.StorageKeyPromoCode); err != nil {
		r.log.Warnw("promo_storage_remove_failed", "error", err)
	}
}
