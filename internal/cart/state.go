package cart

import (
	"fmt"
	"math"
	"strings"

	"github.com/savagerise/storefront/internal/models"
)

// MaxLineQuantity 单行数量上限，与持久化格式可读回的范围一致
const MaxLineQuantity = math.MaxInt32

// Key 购物车行标识 (商品ID, 颜色, 尺码)
type Key struct {
	ProductID string
	Color     string
	Size      string
}

// NewKey 构建行标识（去除首尾空白）
func NewKey(productID, color, size string) Key {
	return Key{
		ProductID: strings.TrimSpace(productID),
		Color:     strings.TrimSpace(color),
		Size:      strings.TrimSpace(size),
	}
}

// Valid 三个字段均非空
func (k Key) Valid() bool {
	return k.ProductID != "" && k.Color != "" && k.Size != ""
}

func (k Key) String() string {
	return fmt.Sprintf("%s-%s-%s", k.ProductID, k.Color, k.Size)
}

// Line 购物车行，商品为加购时的快照
type Line struct {
	Product  models.Product `json:"product"`
	Variant  models.Variant `json:"selectedVariant"`
	Size     string         `json:"selectedSize"`
	Quantity int            `json:"quantity"`
}

// Key 返回行标识
func (l Line) Key() Key {
	return NewKey(l.Product.ID, l.Variant.Color, l.Size)
}

// LineTotal 单价 × 数量
func (l Line) LineTotal() models.Money {
	return l.Product.Price.MulInt(l.Quantity)
}

// State 购物车状态，小计与件数始终由 Lines 推导
type State struct {
	Lines []Line
}

// IsEmpty 是否为空
func (s State) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Subtotal Σ 单价 × 数量
func (s State) Subtotal() models.Money {
	total := models.Money{}
	for _, line := range s.Lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// ItemCount Σ 数量
func (s State) ItemCount() int {
	count := 0
	for _, line := range s.Lines {
		count += line.Quantity
	}
	return count
}

// Signature 内容签名 productId-color-size-qty，以 | 连接
func (s State) Signature() string {
	parts := make([]string, 0, len(s.Lines))
	for _, line := range s.Lines {
		parts = append(parts, fmt.Sprintf("%s-%d", line.Key().String(), line.Quantity))
	}
	return strings.Join(parts, "|")
}

// Find 按标识查找行
func (s State) Find(key Key) (Line, bool) {
	if idx := s.indexOf(key); idx >= 0 {
		return s.Lines[idx], true
	}
	return Line{}, false
}

// OrderItems 转换为下单行
func (s State) OrderItems() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(s.Lines))
	for _, line := range s.Lines {
		key := line.Key()
		items = append(items, models.OrderItem{
			ProductID: key.ProductID,
			Color:     key.Color,
			Size:      key.Size,
			Qty:       line.Quantity,
			UnitPrice: line.Product.Price,
		})
	}
	return items
}

func (s State) indexOf(key Key) int {
	for i, line := range s.Lines {
		if line.Key() == key {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	lines := make([]Line, len(s.Lines))
	copy(lines, s.Lines)
	return State{Lines: lines}
}
