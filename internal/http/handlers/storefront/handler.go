package storefront

import "github.com/savagerise/storefront/internal/provider"

// Handler 店铺前台接口处理器入口
// 说明：购物车、优惠码与登录态均挂在会话上，由 SessionMiddleware 注入。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
