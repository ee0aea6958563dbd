package pricing

import (
	"fmt"
	"strings"

	"github.com/savagerise/storefront/internal/config"
	"github.com/savagerise/storefront/internal/models"

	"github.com/shopspring/decimal"
)

// Totals 订单金额
type Totals struct {
	Subtotal      models.Money `json:"subtotal"`
	Discount      models.Money `json:"discount"`
	AfterDiscount models.Money `json:"after_discount"`
	Shipping      models.Money `json:"shipping"`
	Total         models.Money `json:"total"`
	FreeShipping  bool         `json:"free_shipping"`
	// RemainingForFreeShipping 距离免运费还差的金额
	RemainingForFreeShipping models.Money `json:"remaining_for_free_shipping"`
}

// Policy 运费策略
type Policy struct {
	Threshold models.Money
	Cost      models.Money
}

// DefaultPolicy 门槛 300，运费 7
func DefaultPolicy() Policy {
	return Policy{
		Threshold: models.NewMoneyFromInt(300),
		Cost:      models.NewMoneyFromInt(7),
	}
}

// PolicyFromConfig 从店铺配置解析运费策略
func PolicyFromConfig(cfg config.ShopConfig) (Policy, error) {
	policy := DefaultPolicy()
	if raw := strings.TrimSpace(cfg.ShippingThreshold); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			return Policy{}, fmt.Errorf("invalid shop.shipping_threshold: %q", raw)
		}
		policy.Threshold = models.NewMoneyFromDecimal(d)
	}
	if raw := strings.TrimSpace(cfg.ShippingCost); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			return Policy{}, fmt.Errorf("invalid shop.shipping_cost: %q", raw)
		}
		policy.Cost = models.NewMoneyFromDecimal(d)
	}
	return policy, nil
}

// Compute 计算订单金额；优惠被限制在 [0, subtotal]
func Compute(subtotal, discount, threshold, cost models.Money) Totals {
	zero := models.Money{}
	if subtotal.IsNegative() {
		subtotal = zero
	}
	if discount.IsNegative() {
		discount = zero
	}
	if discount.GreaterThan(subtotal.Decimal) {
		discount = subtotal
	}
	after := subtotal.Sub(discount)

	totals := Totals{
		Subtotal:      subtotal,
		Discount:      discount,
		AfterDiscount: after,
		Shipping:      cost,
		FreeShipping:  false,
	}
	if after.GreaterThanOrEqual(threshold.Decimal) {
		totals.Shipping = zero
		totals.FreeShipping = true
	} else {
		totals.RemainingForFreeShipping = threshold.Sub(after)
	}
	totals.Total = after.Add(totals.Shipping)
	return totals
}

// Compute 按策略计算
func (p Policy) Compute(subtotal, discount models.Money) Totals {
	return Compute(subtotal, discount, p.Threshold, p.Cost)
}
