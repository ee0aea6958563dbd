package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/savagerise/storefront/internal/models"
)

const defaultProductCacheTTL = 5 * time.Minute

func productKey(productID string) string {
	return fmt.Sprintf("catalog:product:%s", strings.TrimSpace(productID))
}

// GetProduct 获取商品快照缓存
func GetProduct(ctx context.Context, productID string) (*models.Product, bool, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, false, nil
	}
	var product models.Product
	hit, err := GetJSON(ctx, productKey(productID), &product)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &product, true, nil
}

// SetProduct 写入商品快照缓存
func SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	if product == nil || strings.TrimSpace(product.ID) == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultProductCacheTTL
	}
	return SetJSON(ctx, productKey(product.ID), product, ttl)
}
