package apiclient

import (
	"context"
	"net/http"

	"github.com/savagerise/storefront/internal/models"
)

// Health 远端健康检查
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.doJSON(ctx, request{name: "health", method: http.MethodGet, path: "/health"}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
