package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/savagerise/storefront/internal/config"
	"github.com/savagerise/storefront/internal/constants"
	"github.com/savagerise/storefront/internal/session"
	"github.com/savagerise/storefront/internal/storage"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestSessionMiddlewareIssuesAndReusesID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	manager := session.NewManager(storage.NewMemory(), nil, time.Minute)
	t.Cleanup(manager.Close)
	cfg := config.SessionConfig{CookieName: "sf_session", HeaderName: "X-Session-ID"}

	r := gin.New()
	r.Use(SessionMiddleware(cfg, manager))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"session_id": getSessionID(c)})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	issued := w.Header().Get("X-Session-ID")
	if !session.ValidID(issued) {
		t.Fatalf("expected issued session id, got %q", issued)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "sf_session="+issued) {
		t.Fatalf("expected session cookie, got %q", w.Header().Get("Set-Cookie"))
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: "sf_session", Value: issued})
	r.ServeHTTP(w2, req)
	if w2.Header().Get("X-Session-ID") != issued {
		t.Fatalf("cookie session should be reused, got %q", w2.Header().Get("X-Session-ID"))
	}
	if w2.Header().Get("Set-Cookie") != "" {
		t.Fatalf("existing session should not reissue cookie")
	}
	if manager.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", manager.Len())
	}
}

func TestSessionMiddlewareWithoutManager(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(SessionMiddleware(config.SessionConfig{}, nil))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 503 {
		t.Fatalf("status_code want 503 got %d", resp.StatusCode)
	}
}

func TestLocaleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(LocaleMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyLocale))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	r.ServeHTTP(w, req)
	if w.Body.String() != "en" || w.Header().Get("Content-Language") != "en" {
		t.Fatalf("expected en locale, got body=%q header=%q", w.Body.String(), w.Header().Get("Content-Language"))
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w2.Body.String() != "fr" {
		t.Fatalf("expected default fr locale, got %q", w2.Body.String())
	}
}
