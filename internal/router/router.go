package router

import (
	"fmt"
	"strings"

	"github.com/savagerise/storefront/internal/cache"
	"github.com/savagerise/storefront/internal/config"
	"github.com/savagerise/storefront/internal/http/handlers/storefront"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/i18n"
	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/metrics"
	"github.com/savagerise/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := storefront.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	promoRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:promo", redisPrefix),
		WindowSeconds: cfg.Security.PromoRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PromoRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.PromoRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(LocaleMiddleware())

	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(metrics.Handler(c.Registry)))
	}

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", h.Health)

		// 商品目录
		apiV1.GET("/products", h.GetProducts)
		apiV1.GET("/products/search", h.SearchProducts)
		apiV1.GET("/products/:id", h.GetProduct)
		apiV1.GET("/products/:id/reviews", h.GetReviews)
		apiV1.GET("/products/:id/reviews/stats", h.GetReviewStats)
		apiV1.GET("/categories", h.GetCategories)
		apiV1.GET("/categories/:name/products", h.GetCategoryProducts)

		// 会话接口
		sess := apiV1.Group("")
		sess.Use(SessionMiddleware(cfg.Session, c.Sessions))
		{
			sess.DELETE("/session", h.ResetSession)

			sess.GET("/cart", h.GetCart)
			sess.POST("/cart/items", h.AddCartLine)
			sess.PATCH("/cart/items", h.UpdateCartLine)
			sess.DELETE("/cart/items", h.RemoveCartLine)
			sess.DELETE("/cart", h.ClearCart)

			sess.GET("/promo", h.GetPromo)
			sess.POST("/promo", RateLimitMiddleware(redisClient, promoRule, KeyBySession), h.ApplyPromo)
			sess.POST("/promo/revalidate", h.RevalidatePromo)
			sess.DELETE("/promo", h.RemovePromo)

			sess.GET("/checkout/preview", h.PreviewCheckout)
			sess.POST("/checkout", h.PlaceOrder)

			sess.POST("/auth/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), h.UserLogin)
			sess.POST("/auth/signup", RateLimitMiddleware(redisClient, loginRule, KeyByIP), h.UserSignup)
			sess.POST("/auth/logout", h.UserLogout)
			sess.GET("/auth/me", h.GetCurrentUser)
			sess.POST("/auth/me/refresh", h.RefreshCurrentUser)

			sess.GET("/wishlist", h.GetWishlist)
			sess.POST("/wishlist", h.AddWishlist)
			sess.DELETE("/wishlist/:product_id", h.RemoveWishlist)
			sess.POST("/products/:id/reviews", h.AddReview)

			sess.GET("/orders", h.GetMyOrders)
			sess.GET("/orders/:id", h.GetMyOrder)
			sess.PATCH("/orders/:id/cancel", h.CancelMyOrder)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, i18n.T(i18n.ResolveLocale(ctx), "error.not_found"))
	})

	return r
}
