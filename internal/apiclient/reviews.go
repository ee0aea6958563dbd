package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/savagerise/storefront/internal/models"
)

// ReviewQuery 评价列表查询
type ReviewQuery struct {
	Rating   int
	SortBest bool
	Skip     int
	Limit    int
}

// ListReviews 获取商品评价
func (c *Client) ListReviews(ctx context.Context, productID string, query ReviewQuery) ([]models.Review, error) {
	params := url.Values{}
	if query.Rating > 0 {
		params.Set("rating", strconv.Itoa(query.Rating))
	}
	params.Set("sort_best", strconv.FormatBool(query.SortBest))
	params.Set("skip", strconv.Itoa(query.Skip))
	params.Set("limit", strconv.Itoa(query.Limit))

	var reviews []models.Review
	path := "/products/" + url.PathEscape(strings.TrimSpace(productID)) + "/reviews/?" + params.Encode()
	if err := c.doJSON(ctx, request{name: "reviews_list", method: http.MethodGet, path: path}, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ReviewStats 获取评价统计
func (c *Client) ReviewStats(ctx context.Context, productID string) (*models.ReviewStats, error) {
	var stats models.ReviewStats
	path := "/products/" + url.PathEscape(strings.TrimSpace(productID)) + "/reviews/stats"
	if err := c.doJSON(ctx, request{name: "reviews_stats", method: http.MethodGet, path: path}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AddReview 新增评价
func (c *Client) AddReview(ctx context.Context, token, productID string, payload models.ReviewCreate) (*models.Review, error) {
	var review models.Review
	path := "/products/" + url.PathEscape(strings.TrimSpace(productID)) + "/reviews/"
	if err := c.doJSON(ctx, request{name: "reviews_create", method: http.MethodPost, path: path, token: token, body: payload}, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
