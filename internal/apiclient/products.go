package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/savagerise/storefront/internal/models"
)

// ListProducts 分页获取商品
func (c *Client) ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error) {
	var products []models.Product
	path := fmt.Sprintf("/products/?skip=%d&limit=%d", skip, limit)
	if err := c.doJSON(ctx, request{name: "products_list", method: http.MethodGet, path: path}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct 在前 scanLimit 个商品中查找指定商品（远端没有按ID查询的接口）
func (c *Client) GetProduct(ctx context.Context, productID string, scanLimit int) (*models.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrProductNotFound
	}
	products, err := c.ListProducts(ctx, 0, scanLimit)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// SearchProducts 按条件搜索商品
func (c *Client) SearchProducts(ctx context.Context, filters models.SearchFilters, skip, limit int) ([]models.Product, error) {
	params := url.Values{}
	if text := strings.TrimSpace(filters.Text); text != "" {
		params.Set("text", text)
	}
	if filters.MinPrice != nil && *filters.MinPrice > 0 {
		params.Set("min_price", strconv.Itoa(*filters.MinPrice))
	}
	if filters.MaxPrice != nil && *filters.MaxPrice > 0 {
		params.Set("max_price", strconv.Itoa(*filters.MaxPrice))
	}
	if color := strings.TrimSpace(filters.Color); color != "" {
		params.Set("color", color)
	}
	if size := strings.TrimSpace(filters.Size); size != "" {
		params.Set("size", size)
	}
	if sort := strings.TrimSpace(filters.Sort); sort != "" {
		params.Set("sort", sort)
	}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))

	var products []models.Product
	path := "/products/search?" + params.Encode()
	if err := c.doJSON(ctx, request{name: "products_search", method: http.MethodGet, path: path}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories 获取全部分类
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.doJSON(ctx, request{name: "categories_list", method: http.MethodGet, path: "/categories/"}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ProductsByCategory 按分类名称获取商品
func (c *Client) ProductsByCategory(ctx context.Context, categoryName string, skip, limit int) ([]models.Product, error) {
	var products []models.Product
	path := fmt.Sprintf("/categories/%s/products?skip=%d&limit=%d", url.PathEscape(strings.TrimSpace(categoryName)), skip, limit)
	if err := c.doJSON(ctx, request{name: "categories_products", method: http.MethodGet, path: path}, &products); err != nil {
		return nil, err
	}
	return products, nil
}
