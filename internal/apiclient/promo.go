package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/savagerise/storefront/internal/models"
)

// ApplyPromo 校验优惠码（令牌可为空，部分优惠码需要登录）
func (c *Client) ApplyPromo(ctx context.Context, token string, payload models.PromoApplyRequest) (*models.PromoApplyResponse, error) {
	var wire promoApplyWire
	if err := c.doJSON(ctx, request{name: "promocodes_apply", method: http.MethodPost, path: "/promocodes/apply", token: token, body: payload}, &wire); err != nil {
		return nil, err
	}
	if wire.Valid == nil {
		return nil, fmt.Errorf("%w: promocodes_apply response has no valid field", ErrResponseInvalid)
	}
	resp := wire.PromoApplyResponse
	resp.Valid = *wire.Valid
	return &resp, nil
}

// promoApplyWire 区分缺失的 valid 字段与 valid=false
type promoApplyWire struct {
	Valid *bool `json:"valid"`
	models.PromoApplyResponse
}
