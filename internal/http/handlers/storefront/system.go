package storefront

import (
	"github.com/savagerise/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Health 远端 API 健康状态
func (h *Handler) Health(c *gin.Context) {
	status, err := h.API.Health(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, remoteErrorRules, response.CodeServiceUnavailable, "error.api_unavailable")
		return
	}
	response.Success(c, gin.H{
		"api":      status.Status,
		"sessions": h.Sessions.Len(),
	})
}

// ResetSession 清空当前会话的全部状态（购物车、优惠码、登录令牌）
func (h *Handler) ResetSession(c *gin.Context) {
	sess, ok := getSession(c)
	if !ok {
		return
	}
	if err := h.Sessions.Reset(c.Request.Context(), sess.ID); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"reset": true})
}
