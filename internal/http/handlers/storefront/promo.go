package storefront

import (
	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/i18n"
	"github.com/savagerise/storefront/internal/promo"

	"github.com/gin-gonic/gin"
)

// PromoRequest 使用优惠码请求
type PromoRequest struct {
	Code string `json:"code"`
}

// PromoResponse 优惠码状态（附本地化提示）
type PromoResponse struct {
	promo.State
	Message string `json:"message,omitempty"`
}

func newPromoResponse(locale string, state promo.State) PromoResponse {
	return PromoResponse{State: state, Message: promoMessage(locale, state)}
}

func promoMessage(locale string, state promo.State) string {
	switch state.Status {
	case promo.StatusApplied:
		return i18n.T(locale, "promo.applied")
	case promo.StatusUnavailable:
		return i18n.T(locale, "promo.unavailable")
	case promo.StatusRejected:
		switch state.Reason {
		case constants.PromoReasonLoginRequired, constants.PromoReasonPerUserLimitReached, constants.PromoReasonMaxUsesReached:
			return i18n.T(locale, "promo."+state.Reason)
		default:
			return i18n.T(locale, "promo.invalid")
		}
	default:
		return ""
	}
}

// GetPromo 当前优惠码状态
func (h *Handler) GetPromo(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	response.Success(c, newPromoResponse(i18n.ResolveLocale(c), sess.Promo.State()))
}

// ApplyPromo 校验并应用优惠码（业务拒绝以状态返回，不视为错误）
func (h *Handler) ApplyPromo(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	var req PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	state, err := sess.Promo.Apply(c.Request.Context(), req.Code)
	if err != nil {
		respondWithMappedError(c, err, promoErrorRules, response.CodeInternal, "error.internal")
		return
	}
	resp := newPromoResponse(i18n.ResolveLocale(c), state)
	response.SuccessWithMsg(c, resp.Message, resp)
}

// RevalidatePromo 主动重新校验已保存的优惠码
func (h *Handler) RevalidatePromo(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	state := sess.Promo.Revalidate(c.Request.Context())
	response.Success(c, newPromoResponse(i18n.ResolveLocale(c), state))
}

// RemovePromo 移除优惠码
func (h *Handler) RemovePromo(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	state := sess.Promo.Remove(c.Request.Context())
	response.Success(c, newPromoResponse(i18n.ResolveLocale(c), state))
}
