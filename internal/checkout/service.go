package checkout

import (
	"context"
	"errors"

	"github.com/savagerise/storefront/internal/cart"
	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/metrics"
	"github.com/savagerise/storefront/internal/models"
	"github.com/savagerise/storefront/internal/pricing"
	"github.com/savagerise/storefront/internal/promo"

	"github.com/shopspring/decimal"
)

var (
	ErrLoginRequired    = errors.New("login required to place an order")
	ErrEmailNotVerified = errors.New("email not verified")
	ErrCartEmpty        = errors.New("cart is empty")
)

var totalTolerance = decimal.NewFromFloat(0.01)

// OrderRemote 远端下单接口
type OrderRemote interface {
	CreateOrder(ctx context.Context, token string, payload models.OrderCreate) (*models.Order, error)
}

// CartView 购物车读写
type CartView interface {
	Snapshot() cart.Snapshot
	Settle(ctx context.Context, ordered []cart.Line)
}

// PromoView 优惠码读写
type PromoView interface {
	State() promo.State
	Remove(ctx context.Context) promo.State
}

// Identity 当前登录身份
type Identity interface {
	Token() string
	User() *models.User
}

// Session 下单所需的会话组件
type Session struct {
	Cart  CartView
	Promo PromoView
	Auth  Identity
}

// Preview 结算预览
type Preview struct {
	Items  []models.OrderItem `json:"items"`
	Lines  []cart.Line        `json:"lines"`
	Promo  promo.State        `json:"promo"`
	Totals pricing.Totals     `json:"totals"`
}

// Result 下单结果
type Result struct {
	Order  *models.Order  `json:"order"`
	Totals pricing.Totals `json:"totals"`
	// TotalMismatch 服务端实付金额与本地计算不一致
	TotalMismatch bool `json:"total_mismatch"`
}

// Service 结算服务
type Service struct {
	remote  OrderRemote
	policy  pricing.Policy
	metrics *metrics.Storefront
}

// NewService 创建结算服务
func NewService(remote OrderRemote, policy pricing.Policy, m *metrics.Storefront) *Service {
	return &Service{remote: remote, policy: policy, metrics: m}
}

// Policy 运费策略
func (s *Service) Policy() pricing.Policy {
	return s.policy
}

// Preview 计算当前购物车的结算金额
func (s *Service) Preview(sess Session) Preview {
	snap := sess.Cart.Snapshot()
	state := sess.Promo.State()
	lines := snap.State.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return Preview{
		Items:  snap.State.OrderItems(),
		Lines:  lines,
		Promo:  state,
		Totals: s.policy.Compute(snap.Subtotal, state.ActiveDiscount()),
	}
}

// PlaceOrder 货到付款下单，成功后扣减已下单的行并清除优惠码
func (s *Service) PlaceOrder(ctx context.Context, sess Session, shipping models.ShippingInfo) (*Result, error) {
	user := sess.Auth.User()
	token := sess.Auth.Token()
	if user == nil || token == "" {
		return nil, ErrLoginRequired
	}
	if !user.IsActive {
		return nil, ErrEmailNotVerified
	}

	shipping = NormalizeShipping(shipping)
	if err := ValidateShipping(shipping); err != nil {
		return nil, err
	}

	preview := s.Preview(sess)
	if len(preview.Items) == 0 {
		return nil, ErrCartEmpty
	}

	payload := models.OrderCreate{
		Items:         preview.Items,
		Shipping:      shipping,
		PaymentMethod: constants.PaymentMethodCOD,
	}
	if preview.Promo.Status == promo.StatusApplied {
		payload.PromoCode = preview.Promo.Code
	}

	log := logger.SW("component", "checkout", "user_id", user.ID)
	order, err := s.remote.CreateOrder(ctx, token, payload)
	if err != nil {
		s.metrics.IncOrder("failed")
		log.Warnw("checkout_order_failed", "error", err, "item_count", len(preview.Items))
		return nil, err
	}
	s.metrics.IncOrder("placed")

	result := &Result{Order: order, Totals: preview.Totals}
	diff := order.TotalAmount.Sub(preview.Totals.Total).Abs()
	if diff.GreaterThan(totalTolerance) {
		result.TotalMismatch = true
		log.Warnw("checkout_total_mismatch",
			"order_id", order.ID,
			"client_total", preview.Totals.Total.String(),
			"server_total", order.TotalAmount.String(),
		)
	}

	sess.Cart.Settle(ctx, preview.Lines)
	sess.Promo.Remove(ctx)
	log.Infow("checkout_order_placed", "order_id", order.ID, "total", order.TotalAmount.String())
	return result, nil
}
