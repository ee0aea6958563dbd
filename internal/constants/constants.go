package constants

// 会话持久化键（位于 sess:<id>: 命名空间下）
const (
	StorageKeyCart      = "cart"
	StorageKeyPromoCode = "promo_code"
	StorageKeyToken     = "token"
)

// SessionKeyPrefix 会话命名空间前缀
const SessionKeyPrefix = "sess"

// 持久化驱动
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
)

// 优惠码状态
const (
	PromoStatusIdle        = "idle"
	PromoStatusValidating  = "validating"
	PromoStatusApplied     = "applied"
	PromoStatusRejected    = "rejected"
	PromoStatusUnavailable = "unavailable"
)

// 优惠码失败原因（远端返回）
const (
	PromoReasonLoginRequired       = "login_required"
	PromoReasonPerUserLimitReached = "per_user_limit_reached"
	PromoReasonMaxUsesReached      = "max_uses_reached"
	PromoReasonInvalid             = "invalid"
)

// PaymentMethodCOD 货到付款，唯一支持的支付方式
const PaymentMethodCOD = "cod"

// 订单状态（远端）
const (
	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancelled"
)

// 目录默认分页
const (
	CatalogDefaultLimit   = 10
	CatalogMaxLimit       = 100
	CatalogProductScanMax = 100
)

// gin 上下文键
const (
	ContextKeySession   = "storefront_session"
	ContextKeyRequestID = "request_id"
	ContextKeyLocale    = "locale"
)
