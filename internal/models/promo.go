package models

// PromoApplyRequest 优惠码校验请求
type PromoApplyRequest struct {
	Code        string   `json:"code"`         // 规范化后的优惠码
	OrderTotal  Money    `json:"order_total"`  // 当前订单小计
	ProductIDs  []string `json:"product_ids"`  // 订单内商品ID
	CategoryIDs []string `json:"category_ids"` // 分类ID（始终为空数组）
}

// PromoApplyResponse 优惠码校验结果
type PromoApplyResponse struct {
	Valid         bool   `json:"valid"`                    // 是否有效
	Code          string `json:"code,omitempty"`           // 服务端回显的优惠码
	DiscountValue *Money `json:"discount_value,omitempty"` // 优惠金额
	Reason        string `json:"reason,omitempty"`         // 失败原因
}

// NewPromoApplyRequest 从订单行构建校验请求
func NewPromoApplyRequest(code string, items []OrderItem) PromoApplyRequest {
	total := Money{}
	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		total = total.Add(item.UnitPrice.MulInt(item.Qty))
		productIDs = append(productIDs, item.ProductID)
	}
	return PromoApplyRequest{
		Code:        code,
		OrderTotal:  total,
		ProductIDs:  productIDs,
		CategoryIDs: []string{},
	}
}
