package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/savagerise/storefront/internal/logger"
	"github.com/savagerise/storefront/internal/metrics"
)

var (
	ErrNetwork         = errors.New("network error: unable to connect to api server")
	ErrTimeout         = errors.New("request timeout: api server took too long to respond")
	ErrResponseInvalid = errors.New("api response invalid")
	ErrProductNotFound = errors.New("product not found")
)

const (
	defaultTimeout = 15 * time.Second
	// maxResponseBytes 远端响应体上限
	maxResponseBytes = 4 << 20
)

// APIError 远端返回的非 2xx 响应
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d - %s", e.Status, e.Detail)
}

// StatusOf 返回错误携带的 HTTP 状态码，非 APIError 时为 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsTransport 判断是否为网络或超时错误
func IsTransport(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout)
}

// Client 远端 REST API 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Storefront
}

// New 创建客户端，timeout<=0 时使用 15s
func New(baseURL string, timeout time.Duration, m *metrics.Storefront) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

// BaseURL 返回远端地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	name        string
	method      string
	path        string
	token       string
	body        interface{}
	form        io.Reader
	contentType string
}

func (c *Client) doJSON(ctx context.Context, req request, out interface{}) error {
	var payload io.Reader
	contentType := req.contentType
	switch {
	case req.form != nil:
		payload = req.form
	case req.body != nil:
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%w: marshal %s request failed", ErrResponseInvalid, req.name)
		}
		payload = bytes.NewReader(raw)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, payload)
	if err != nil {
		return fmt.Errorf("%w: build %s request: %v", ErrNetwork, req.name, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token := strings.TrimSpace(req.token); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = classifyTransportError(err)
		c.observe(req.name, outcomeOf(err), start)
		logger.Warnw("api_request_failed", "endpoint", req.name, "path", req.path, "error", err)
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		err = classifyTransportError(err)
		c.observe(req.name, outcomeOf(err), start)
		return err
	}
	if len(body) > maxResponseBytes {
		c.observe(req.name, "too_large", start)
		logger.Warnw("api_response_too_large", "endpoint", req.name, "path", req.path, "limit", maxResponseBytes)
		return fmt.Errorf("%w: %s response exceeds %d bytes", ErrResponseInvalid, req.name, maxResponseBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Detail: extractDetail(body)}
		c.observe(req.name, fmt.Sprintf("http_%d", resp.StatusCode), start)
		logger.Warnw("api_request_rejected",
			"endpoint", req.name,
			"path", req.path,
			"status", resp.StatusCode,
			"detail", apiErr.Detail,
		)
		return apiErr
	}
	c.observe(req.name, "ok", start)

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrResponseInvalid, req.name, err)
	}
	return nil
}

func (c *Client) observe(name, outcome string, start time.Time) {
	c.metrics.ObserveAPICall(name, outcome, time.Since(start))
}

func classifyTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func outcomeOf(err error) string {
	if errors.Is(err, ErrTimeout) {
		return "timeout"
	}
	return "network_error"
}

// extractDetail 读取 {"detail": "..."}，否则返回原文
func extractDetail(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if detail, ok := payload.Detail.(string); ok && detail != "" {
			return detail
		}
	}
	if len(text) > 512 {
		text = text[:512]
	}
	return text
}
