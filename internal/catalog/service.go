package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/savagerise/storefront/internal/cache"
	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/models"
)

// ErrVariantNotFound 商品没有该颜色
var ErrVariantNotFound = errors.New("variant not found")

// Remote 远端目录接口
type Remote interface {
	ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string, scanLimit int) (*models.Product, error)
	SearchProducts(ctx context.Context, filters models.SearchFilters, skip, limit int) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ProductsByCategory(ctx context.Context, categoryName string, skip, limit int) ([]models.Product, error)
}

// Service 商品目录（带 Redis 快照缓存）
type Service struct {
	remote Remote
	ttl    time.Duration
}

// NewService 创建目录服务
func NewService(remote Remote, ttl time.Duration) *Service {
	return &Service{remote: remote, ttl: ttl}
}

// Page 分页参数
type Page struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// Normalize 修正分页参数
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = constants.CatalogDefaultLimit
	}
	if p.Limit > constants.CatalogMaxLimit {
		p.Limit = constants.CatalogMaxLimit
	}
	return p
}

// List 商品列表，同时预热商品缓存
func (s *Service) List(ctx context.Context, page Page) ([]models.Product, error) {
	page = page.Normalize()
	products, err := s.remote.ListProducts(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, err
	}
	s.warm(ctx, products)
	return products, nil
}

// Search 搜索商品
func (s *Service) Search(ctx context.Context, filters models.SearchFilters, page Page) ([]models.Product, error) {
	page = page.Normalize()
	products, err := s.remote.SearchProducts(ctx, filters, page.Skip, page.Limit)
	if err != nil {
		return nil, err
	}
	s.warm(ctx, products)
	return products, nil
}

// Categories 分类列表
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.remote.ListCategories(ctx)
}

// ByCategory 分类下的商品
func (s *Service) ByCategory(ctx context.Context, name string, page Page) ([]models.Product, error) {
	page = page.Normalize()
	products, err := s.remote.ProductsByCategory(ctx, name, page.Skip, page.Limit)
	if err != nil {
		return nil, err
	}
	s.warm(ctx, products)
	return products, nil
}

// Product 获取商品，优先读取缓存
func (s *Service) Product(ctx context.Context, productID string) (*models.Product, error) {
	productID = strings.TrimSpace(productID)
	if cached, hit, err := cache.GetProduct(ctx, productID); err != nil {
		logger.Warnw("catalog_cache_read_failed", "product_id", productID, "error", err)
	} else if hit {
		return cached, nil
	}

	product, err := s.remote.GetProduct(ctx, productID, constants.CatalogProductScanMax)
	if err != nil {
		return nil, err
	}
	if err := cache.SetProduct(ctx, product, s.ttl); err != nil {
		logger.Warnw("catalog_cache_write_failed", "product_id", productID, "error", err)
	}
	return product, nil
}

// ResolveLine 为加购解析商品快照与颜色款式
func (s *Service) ResolveLine(ctx context.Context, productID, color string) (*models.Product, models.Variant, error) {
	product, err := s.Product(ctx, productID)
	if err != nil {
		return nil, models.Variant{}, err
	}
	variant, ok := product.FindVariant(color)
	if !ok {
		return nil, models.Variant{}, ErrVariantNotFound
	}
	return product, variant, nil
}

func (s *Service) warm(ctx context.Context, products []models.Product) {
	if !cache.Enabled() {
		return
	}
	for i := range products {
		if err := cache.SetProduct(ctx, &products[i], s.ttl); err != nil {
			logger.Warnw("catalog_cache_warm_failed", "product_id", products[i].ID, "error", err)
			return
		}
	}
}
