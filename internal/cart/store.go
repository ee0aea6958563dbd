package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/metrics"
	"github.com/savagerise/storefront/internal/models"
	"github.com/savagerise/storefront/internal/storage"

	"go.uber.org/zap"
)

// ErrInvalidLine 加购参数缺失或尺码不属于该款式
var ErrInvalidLine = errors.New("invalid cart line")

// Snapshot 变更后的只读快照
type Snapshot struct {
	Version   uint64
	State     State
	Signature string
	Subtotal  models.Money
	ItemCount int
}

// Listener 快照订阅者，在购物车锁内按顺序调用，不得回调 Store
type Listener func(Snapshot)

// Store 单会话购物车
type Store struct {
	mu        sync.Mutex
	state     State
	version   uint64
	storage   storage.Store
	log       *zap.SugaredLogger
	metrics   *metrics.Storefront
	listeners map[int]Listener
	order     []int
	nextID    int
	hydrated  bool
}

// Option 购物车可选项
type Option func(*Store)

// WithLogger 指定日志
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics 指定指标
func WithMetrics(m *metrics.Storefront) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore 创建购物车，storage 为会话命名空间内的存储
func NewStore(st storage.Store, opts ...Option) *Store {
	s := &Store{
		storage:   st,
		log:       logger.Component("cart", ""),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe 注册订阅者，返回取消函数
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Snapshot 当前快照
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Hydrate 从存储恢复购物车，每个会话只执行一次
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		return
	}
	s.hydrated = true
	if s.storage == nil {
		return
	}

	raw, ok, err := s.storage.Get(ctx, constants.StorageKeyCart)
	if err != nil {
		s.log.Warnw("cart_hydrate_read_failed", "error", err)
		return
	}
	if !ok {
		return
	}
	lines, dropped, err := Decode(raw)
	if err != nil {
		s.log.Warnw("cart_hydrate_malformed", "error", err)
		if err := s.storage.Remove(ctx, constants.StorageKeyCart); err != nil {
			s.log.Warnw("cart_storage_remove_failed", "error", err)
		}
		return
	}
	if dropped > 0 {
		s.log.Warnw("cart_hydrate_entries_dropped", "dropped", dropped, "kept", len(lines))
	}
	next := Reduce(State{}, LoadAction{Lines: lines})
	s.state = next
	if dropped > 0 || len(next.Lines) != len(lines) {
		s.persistLocked(ctx)
	}
	s.notifyLocked(LoadAction{}.Name())
}

// AddLine 加购，quantity 必须 >= 1，合并后不得超过 MaxLineQuantity
func (s *Store) AddLine(ctx context.Context, product models.Product, variant models.Variant, size string, quantity int) error {
	line := Line{Product: product, Variant: variant, Size: size, Quantity: quantity}
	line.Size = line.Key().Size
	if !line.Key().Valid() || quantity < 1 || quantity > MaxLineQuantity || !variant.OffersSize(line.Size) {
		s.rejectLine(product.ID, variant.Color, size, quantity)
		return ErrInvalidLine
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.state.Find(line.Key()); ok && existing.Quantity > MaxLineQuantity-quantity {
		s.rejectLine(product.ID, variant.Color, size, quantity)
		return ErrInvalidLine
	}
	s.applyLocked(ctx, AddLineAction{Line: line})
	return nil
}

// RemoveLine 删除行，不存在时无操作
func (s *Store) RemoveLine(ctx context.Context, productID, color, size string) {
	s.dispatch(ctx, RemoveLineAction{Key: NewKey(productID, color, size)})
}

// UpdateQuantity 设置数量，<=0 时删除该行，超过 MaxLineQuantity 返回 ErrInvalidLine
func (s *Store) UpdateQuantity(ctx context.Context, productID, color, size string, quantity int) error {
	if quantity > MaxLineQuantity {
		s.rejectLine(productID, color, size, quantity)
		return ErrInvalidLine
	}
	s.dispatch(ctx, UpdateQuantityAction{Key: NewKey(productID, color, size), Quantity: quantity})
	return nil
}

// Settle 下单成功后扣减已下单的行，下单期间新加的内容保留
func (s *Store) Settle(ctx context.Context, ordered []Line) {
	s.dispatch(ctx, SettleAction{Lines: ordered})
}

func (s *Store) rejectLine(productID, color, size string, quantity int) {
	s.log.Warnw("cart_line_rejected",
		"product_id", productID,
		"color", color,
		"size", size,
		"quantity", quantity,
	)
}

// Clear 清空购物车
func (s *Store) Clear(ctx context.Context) {
	s.dispatch(ctx, ClearAction{})
}

func (s *Store) dispatch(ctx context.Context, action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(ctx, action)
}

func (s *Store) applyLocked(ctx context.Context, action Action) {
	s.state = Reduce(s.state, action)
	s.metrics.IncCartMutation(action.Name())
	s.persistLocked(ctx)
	s.notifyLocked(action.Name())
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.storage == nil {
		return
	}
	payload, err := Encode(s.state)
	if err != nil {
		s.log.Errorw("cart_encode_failed", "error", err)
		return
	}
	if err := s.storage.Set(ctx, constants.StorageKeyCart, payload); err != nil {
		s.log.Warnw("cart_persist_failed", "error", err)
	}
}

func (s *Store) notifyLocked(action string) {
	s.version++
	snap := s.snapshotLocked()
	s.log.Debugw("cart_changed", "action", action, "signature", snap.Signature, "item_count", snap.ItemCount)
	for _, id := range s.order {
		if fn, ok := s.listeners[id]; ok {
			fn(snap)
		}
	}
}

func (s *Store) snapshotLocked() Snapshot {
	state := s.state.clone()
	return Snapshot{
		Version:   s.version,
		State:     state,
		Signature: state.Signature(),
		Subtotal:  state.Subtotal(),
		ItemCount: state.ItemCount(),
	}
}
