package models

// User 远端用户资料
type User struct {
	ID       string  `json:"id"`                  // 用户ID
	Email    string  `json:"email"`               // 邮箱
	IsActive bool    `json:"is_active"`           // 邮箱是否已验证
	FullName *string `json:"full_name,omitempty"` // 姓名
}

// AuthTokens 登录凭证
type AuthTokens struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserCreate 注册请求
type UserCreate struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// Review 商品评价
type Review struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	ProductID string  `json:"product_id"`
	Rating    int     `json:"rating"`
	Title     *string `json:"title,omitempty"`
	Comment   *string `json:"comment,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ReviewCreate 新增评价请求
type ReviewCreate struct {
	Rating  int     `json:"rating"`
	Title   *string `json:"title,omitempty"`
	Comment *string `json:"comment,omitempty"`
	UserID  string  `json:"user_id"`
}

// ReviewStats 评价统计
type ReviewStats struct {
	AverageRating *float64 `json:"average_rating,omitempty"`
	Count         int      `json:"count"`
}

// WishlistItem 心愿单项
type WishlistItem struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	AddedAt   string `json:"added_at"`
}

// HealthStatus 远端健康状态
type HealthStatus struct {
	Status string `json:"status"`
}
