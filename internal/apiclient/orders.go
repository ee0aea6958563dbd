package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/savagerise/storefront/internal/models"
)

// CreateOrder 提交订单
func (c *Client) CreateOrder(ctx context.Context, token string, payload models.OrderCreate) (*models.Order, error) {
	var order models.Order
	if err := c.doJSON(ctx, request{name: "orders_create", method: http.MethodPost, path: "/orders/", token: token, body: payload}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListMyOrders 当前用户订单
func (c *Client) ListMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.doJSON(ctx, request{name: "profile_orders", method: http.MethodGet, path: "/profile/orders", token: token}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetMyOrder 当前用户订单详情
func (c *Client) GetMyOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	var order models.Order
	path := "/profile/orders/" + url.PathEscape(strings.TrimSpace(orderID))
	if err := c.doJSON(ctx, request{name: "profile_order_detail", method: http.MethodGet, path: path, token: token}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder 取消订单
func (c *Client) CancelOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	var order models.Order
	path := "/orders/" + url.PathEscape(strings.TrimSpace(orderID)) + "/cancel"
	if err := c.doJSON(ctx, request{name: "orders_cancel", method: http.MethodPatch, path: path, token: token}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
