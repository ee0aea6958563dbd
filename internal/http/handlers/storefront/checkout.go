package storefront

import (
	"errors"
	"strings"

	"github.com/savagerise/storefront/internal/checkout"
	"github.com/savagerise/storefront/internal/http/response"
	handlershared "github.com/savagerise/storefront/internal/http/handlers/shared"
	"github.com/savagerise/storefront/internal/i18n"
	"github.com/savagerise/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// PreviewCheckout 结算预览
func (h *Handler) PreviewCheckout(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	preview := h.Checkout.Preview(sess.Checkout())
	response.Success(c, gin.H{
		"items":    preview.Items,
		"lines":    preview.Lines,
		"promo":    newPromoResponse(i18n.ResolveLocale(c), preview.Promo),
		"totals":   preview.Totals,
		"currency": h.currency(),
	})
}

// PlaceOrder 货到付款下单
func (h *Handler) PlaceOrder(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var shipping models.ShippingInfo
	if err := c.ShouldBindJSON(&shipping); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.Checkout.PlaceOrder(c.Request.Context(), sess.Checkout(), shipping)
	if err != nil {
		var fieldErr *checkout.ShippingError
		if errors.As(err, &fieldErr) {
			handlershared.RespondErrorWithData(c, response.CodeUnprocessable, "error.shipping_invalid", gin.H{"fields": fieldErr.Fields})
			return
		}
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeBadGateway, "error.order_failed")
		return
	}
	response.Success(c, result)
}

func (h *Handler) currency() string {
	if h.Config == nil || strings.TrimSpace(h.Config.Shop.Currency) == "" {
		return "TND"
	}
	return strings.TrimSpace(h.Config.Shop.Currency)
}
