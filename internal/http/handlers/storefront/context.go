package storefront

import (
	handlershared "github.com/savagerise/storefront/internal/http/handlers/shared"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/session"

	"github.com/gin-gonic/gin"
)

func getSession(c *gin.Context) (*session.Session, bool) {
	return handlershared.GetSession(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// requireToken 需要登录的透传接口使用
func requireToken(c *gin.Context) (*session.Session, string, bool) {
	sess, ok := getSession(c)
	if !ok {
		return nil, "", false
	}
	token := sess.Auth.Token()
	if token == "" {
		respondError(c, response.CodeUnauthorized, "error.login_required", nil)
		return nil, "", false
	}
	return sess, token, true
}
