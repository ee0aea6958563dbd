package shared

import (
	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// SetSession 将会话写入请求上下文
func SetSession(c *gin.Context, sess *session.Session) {
	c.Set(constants.ContextKeySession, sess)
}

// GetSession 从上下文读取会话并统一处理错误响应。
func GetSession(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(constants.ContextKeySession)
	if !exists {
		RespondError(c, response.CodeInternal, "error.session_unavailable", nil)
		return nil, false
	}
	sess, ok := value.(*session.Session)
	if !ok || sess == nil {
		RespondError(c, response.CodeInternal, "error.session_unavailable", nil)
		return nil, false
	}
	return sess, true
}
