package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/savagerise/storefront/internal/models"
)

// Login 表单方式换取访问令牌
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthTokens, error) {
	form := url.Values{}
	form.Set("username", strings.TrimSpace(email))
	form.Set("password", password)

	var tokens models.AuthTokens
	err := c.doJSON(ctx, request{
		name:        "auth_token",
		method:      http.MethodPost,
		path:        "/auth/token",
		form:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &tokens)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(tokens.AccessToken) == "" {
		return nil, ErrResponseInvalid
	}
	return &tokens, nil
}

// Signup 注册账号
func (c *Client) Signup(ctx context.Context, payload models.UserCreate) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, request{name: "auth_signup", method: http.MethodPost, path: "/auth/signup", body: payload}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile 获取当前用户
func (c *Client) GetProfile(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, request{name: "profile_me", method: http.MethodGet, path: "/profile/me", token: token}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
