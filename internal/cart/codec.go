package cart

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/savagerise/storefront/internal/models"
)

// ErrMalformedState 持久化内容不是合法的购物车 JSON
var ErrMalformedState = errors.New("malformed cart state")

type persistedState struct {
	Items     []Line       `json:"items"`
	Total     models.Money `json:"total"`
	ItemCount int          `json:"itemCount"`
}

type persistedEnvelope struct {
	Items []json.RawMessage `json:"items"`
}

type persistedEntry struct {
	Product  *models.Product `json:"product"`
	Variant  *models.Variant `json:"selectedVariant"`
	Size     *string         `json:"selectedSize"`
	Quantity json.RawMessage `json:"quantity"`
}

// Encode 序列化为持久化格式（total/itemCount 仅供展示，读取时忽略）
func Encode(state State) (string, error) {
	items := state.Lines
	if items == nil {
		items = []Line{}
	}
	raw, err := json.Marshal(persistedState{
		Items:     items,
		Total:     state.Subtotal(),
		ItemCount: state.ItemCount(),
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Decode 逐条解析持久化内容，非法条目被丢弃并计数
func Decode(raw string) ([]Line, int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, 0, nil
	}
	var envelope persistedEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, 0, ErrMalformedState
	}
	lines := make([]Line, 0, len(envelope.Items))
	dropped := 0
	for _, item := range envelope.Items {
		line, ok := decodeEntry(item)
		if !ok {
			dropped++
			continue
		}
		lines = append(lines, line)
	}
	return lines, dropped, nil
}

func decodeEntry(raw json.RawMessage) (Line, bool) {
	var entry persistedEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Line{}, false
	}
	if entry.Product == nil || entry.Variant == nil || entry.Size == nil {
		return Line{}, false
	}
	quantity, ok := decodeQuantity(entry.Quantity)
	if !ok {
		return Line{}, false
	}
	line := Line{
		Product:  *entry.Product,
		Variant:  *entry.Variant,
		Size:     strings.TrimSpace(*entry.Size),
		Quantity: quantity,
	}
	if !line.Key().Valid() {
		return Line{}, false
	}
	return line, true
}

// decodeQuantity 只接受 JSON 数字形式的正整数
func decodeQuantity(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || raw[0] == '"' {
		return 0, false
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	if value < 1 || value != math.Trunc(value) || value > MaxLineQuantity {
		return 0, false
	}
	return int(value), true
}
