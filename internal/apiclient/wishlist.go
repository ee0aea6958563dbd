package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/savagerise/storefront/internal/models"
)

// ListWishlist 获取心愿单
func (c *Client) ListWishlist(ctx context.Context, token string, skip, limit int) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	path := fmt.Sprintf("/profile/wishlist/?skip=%d&limit=%d", skip, limit)
	if err := c.doJSON(ctx, request{name: "wishlist_list", method: http.MethodGet, path: path, token: token}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToWishlist 加入心愿单
func (c *Client) AddToWishlist(ctx context.Context, token, productID string) (*models.WishlistItem, error) {
	var item models.WishlistItem
	body := map[string]string{"product_id": strings.TrimSpace(productID)}
	if err := c.doJSON(ctx, request{name: "wishlist_add", method: http.MethodPost, path: "/profile/wishlist/", token: token, body: body}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromWishlist 移出心愿单
func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) error {
	path := "/profile/wishlist/" + url.PathEscape(strings.TrimSpace(productID))
	return c.doJSON(ctx, request{name: "wishlist_remove", method: http.MethodDelete, path: path, token: token}, nil)
}
