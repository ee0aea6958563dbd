package models

import "strings"

// ProductImage 商品图片
type ProductImage struct {
	ID      string  `json:"id"`                 // 图片ID
	URL     string  `json:"url"`                // 图片地址
	AltText *string `json:"alt_text,omitempty"` // 替代文本
	Order   *int    `json:"order,omitempty"`    // 排序
}

// SizeStock 尺码库存
type SizeStock struct {
	Size  string `json:"size"`  // 尺码
	Stock int    `json:"stock"` // 库存
}

// Variant 颜色款式（含图片与各尺码库存）
type Variant struct {
	Color  string         `json:"color"`  // 颜色，购物车行标识的一部分
	Sizes  []SizeStock    `json:"sizes"`  // 尺码库存
	Images []ProductImage `json:"images"` // 图片
}

// OffersSize 判断该款式是否提供指定尺码
func (v Variant) OffersSize(size string) bool {
	for _, s := range v.Sizes {
		if s.Size == size {
			return true
		}
	}
	return false
}

// StockFor 返回指定尺码的库存，不存在时为 0
func (v Variant) StockFor(size string) int {
	for _, s := range v.Sizes {
		if s.Size == size {
			return s.Stock
		}
	}
	return 0
}

// Product 远端目录中的商品（加入购物车时作为快照冻结）
type Product struct {
	ID               string    `json:"id"`                          // 商品ID
	StyleID          string    `json:"style_id"`                    // 款号
	Name             string    `json:"name"`                        // 名称
	FullName         string    `json:"full_name"`                   // 完整名称
	SKU              *string   `json:"sku,omitempty"`               // SKU
	Description      *string   `json:"description,omitempty"`       // 描述
	Fabric           *string   `json:"fabric,omitempty"`            // 面料
	CareInstructions *string   `json:"care_instructions,omitempty"` // 洗护说明
	Categories       []string  `json:"categories"`                  // 分类
	Price            Money     `json:"price"`                       // 单价
	InStock          bool      `json:"in_stock"`                    // 是否有货
	Variants         []Variant `json:"variants"`                    // 颜色款式
}

// FindVariant 按颜色查找款式（忽略大小写与首尾空白）
func (p Product) FindVariant(color string) (Variant, bool) {
	target := strings.TrimSpace(color)
	for _, v := range p.Variants {
		if strings.EqualFold(strings.TrimSpace(v.Color), target) {
			return v, true
		}
	}
	return Variant{}, false
}

// Category 商品分类
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// SearchFilters 商品搜索条件
type SearchFilters struct {
	Text     string `form:"text" json:"text,omitempty"`
	MinPrice *int   `form:"min_price" json:"min_price,omitempty"`
	MaxPrice *int   `form:"max_price" json:"max_price,omitempty"`
	Color    string `form:"color" json:"color,omitempty"`
	Size     string `form:"size" json:"size,omitempty"`
	Sort     string `form:"sort" json:"sort,omitempty"`
}
