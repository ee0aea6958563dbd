package models

// ShippingInfo 收货信息
type ShippingInfo struct {
	FullName     string  `json:"full_name" validate:"required"`     // 收货人
	Email        string  `json:"email" validate:"required,email"`   // 邮箱
	Phone        string  `json:"phone" validate:"required"`         // 电话
	AddressLine1 string  `json:"address_line1" validate:"required"` // 地址
	AddressLine2 *string `json:"address_line2,omitempty"`           // 补充地址
	PostalCode   string  `json:"postal_code" validate:"required"`   // 邮编
	City         string  `json:"city" validate:"required"`          // 城市
	Country      string  `json:"country" validate:"required"`       // 国家
}

// OrderItem 下单行（远端 API 字段名为 qty）
type OrderItem struct {
	ProductID string `json:"product_id"` // 商品ID
	Color     string `json:"color"`      // 颜色
	Size      string `json:"size"`       // 尺码
	Qty       int    `json:"qty"`        // 数量
	UnitPrice Money  `json:"unit_price"` // 加购时冻结的单价
}

// OrderCreate 下单请求
type OrderCreate struct {
	Items         []OrderItem  `json:"items"`
	Shipping      ShippingInfo `json:"shipping"`
	PaymentMethod string       `json:"payment_method"`
	PromoCode     string       `json:"promo_code,omitempty"`
}

// Order 远端持久化后的订单
type Order struct {
	ID            string       `json:"id"`                 // 订单ID
	UserID        *string      `json:"user_id,omitempty"`  // 用户ID
	Items         []OrderItem  `json:"items"`              // 订单行
	Shipping      ShippingInfo `json:"shipping"`           // 收货信息
	PaymentMethod string       `json:"payment_method"`     // 支付方式
	Subtotal      *Money       `json:"subtotal,omitempty"` // 服务端小计（可能缺省）
	Discount      *Money       `json:"discount,omitempty"` // 服务端优惠（可能缺省）
	TotalAmount   Money        `json:"total_amount"`       // 服务端实付金额
	Status        string       `json:"status"`             // 订单状态
	PaymentStatus string       `json:"payment_status"`     // 支付状态
	CreatedAt     string       `json:"created_at"`         // 创建时间
	UpdatedAt     string       `json:"updated_at"`         // 更新时间
}
