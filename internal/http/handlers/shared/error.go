package shared

import (
	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/i18n"
	"github.com/savagerise/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, key, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"key", appErr.Key,
			"error", err,
		)
	}
	appErr.Respond(c)
}

// RespondErrorWithData 返回带数据的国际化错误响应（如字段级校验错误）。
func RespondErrorWithData(c *gin.Context, code int, key string, data interface{}) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	response.ErrorWithData(c, code, msg, data)
}
