package storefront

import (
	"github.com/savagerise/storefront/internal/cart"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/i18n"
	"github.com/savagerise/storefront/internal/models"
	"github.com/savagerise/storefront/internal/pricing"
	"github.com/savagerise/storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// CartLineRequest 加购请求
type CartLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"min=0,max=2147483647"`
}

// CartQuantityRequest 修改数量请求，quantity <= 0 时删除该行
type CartQuantityRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"max=2147483647"`
}

// CartLineKeyRequest 删除行请求（JSON 或 query）
type CartLineKeyRequest struct {
	ProductID string `json:"product_id" form:"product_id" binding:"required"`
	Color     string `json:"color" form:"color" binding:"required"`
	Size      string `json:"size" form:"size" binding:"required"`
}

// CartResponse 购物车响应
type CartResponse struct {
	Items     []cart.Line    `json:"items"`
	Subtotal  models.Money   `json:"subtotal"`
	ItemCount int            `json:"item_count"`
	Promo     PromoResponse  `json:"promo"`
	Totals    pricing.Totals `json:"totals"`
	Shipping  string         `json:"shipping_hint"`
}

func (h *Handler) buildCartResponse(c *gin.Context, sess *session.Session) CartResponse {
	preview := h.Checkout.Preview(sess.Checkout())
	locale := i18n.ResolveLocale(c)
	hint := i18n.T(locale, "checkout.free_shipping_reached")
	if !preview.Totals.FreeShipping {
		hint = i18n.Sprintf(locale, "checkout.free_shipping_missing", preview.Totals.RemainingForFreeShipping.String())
	}
	snap := sess.Cart.Snapshot()
	return CartResponse{
		Items:     preview.Lines,
		Subtotal:  snap.Subtotal,
		ItemCount: snap.ItemCount,
		Promo:     newPromoResponse(locale, preview.Promo),
		Totals:    preview.Totals,
		Shipping:  hint,
	}
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	response.Success(c, h.buildCartResponse(c, sess))
}

// AddCartLine 加购：解析商品快照与颜色款式后写入购物车
func (h *Handler) AddCartLine(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var req CartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := c.Request.Context()
	product, variant, err := h.Catalog.ResolveLine(ctx, req.ProductID, req.Color)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	if err := sess.Cart.AddLine(ctx, *product, variant, req.Size, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, h.buildCartResponse(c, sess))
}

// UpdateCartLine 修改数量
func (h *Handler) UpdateCartLine(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := sess.Cart.UpdateQuantity(c.Request.Context(), req.ProductID, req.Color, req.Size, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, h.buildCartResponse(c, sess))
}

// RemoveCartLine 删除行
func (h *Handler) RemoveCartLine(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var req CartLineKeyRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	sess.Cart.RemoveLine(c.Request.Context(), req.ProductID, req.Color, req.Size)
	response.Success(c, h.buildCartResponse(c, sess))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	sess.Cart.Clear(c.Request.Context())
	response.Success(c, h.buildCartResponse(c, sess))
}
