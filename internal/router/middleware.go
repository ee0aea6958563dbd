package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/savagerise/storefront/internal/config"
	"github.com/savagerise/storefront/internal/constants"
	handlershared "github.com/savagerise/storefront/internal/http/handlers/shared"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/i18n"
	"github.com/savagerise/storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = constants.ContextKeyRequestID
const requestIDHeader = "X-Request-ID"

// 会话 cookie 有效期，持久化状态比内存会话存活更久
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Accept-Language",
			"Cache-Control",
			"X-Requested-With",
			"X-Session-ID",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Session-ID, X-Request-ID")
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"session_id", getSessionID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func getSessionID(c *gin.Context) string {
	value, ok := c.Get(constants.ContextKeySession)
	if !ok {
		return ""
	}
	if sess, ok := value.(*session.Session); ok && sess != nil {
		return sess.ID
	}
	return ""
}

// LocaleMiddleware 协商语言并写入上下文
func LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.ResolveLocale(c)
		c.Set(constants.ContextKeyLocale, locale)
		c.Writer.Header().Set("Content-Language", locale)
		c.Next()
	}
}

// SessionMiddleware 根据 cookie 或请求头解析访客会话，缺失或非法时创建新会话
func SessionMiddleware(cfg config.SessionConfig, manager *session.Manager) gin.HandlerFunc {
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = "sf_session"
	}
	headerName := strings.TrimSpace(cfg.HeaderName)
	if headerName == "" {
		headerName = "X-Session-ID"
	}

	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerName))
		if id == "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				id = cookie
			}
		}

		sess, created, err := manager.Resolve(c.Request.Context(), id)
		if err != nil {
			handlershared.RespondError(c, response.CodeServiceUnavailable, "error.session_unavailable", err)
			c.Abort()
			return
		}
		if created || id != sess.ID {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sess.ID, sessionCookieMaxAge, "/", "", cfg.CookieSecure, true)
		}
		c.Writer.Header().Set(headerName, sess.ID)
		defer manager.Release(sess)
		handlershared.SetSession(c, sess)
		c.Next()
	}
}
