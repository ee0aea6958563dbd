package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStorefrontMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAPICall("promocodes_apply", "ok", 120*time.Millisecond)
	m.ObserveAPICall("promocodes_apply", "ok", 80*time.Millisecond)
	m.IncPromoValidation("apply", "applied")
	m.IncPromoStale()
	m.IncCartMutation("add_line")
	m.IncCartMutation("")
	m.SetActiveSessions(3)
	m.IncOrder("placed")

	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("promocodes_apply", "ok")); got != 2 {
		t.Fatalf("expected 2 api calls, got %f", got)
	}
	if got := testutil.ToFloat64(m.cartMutations.WithLabelValues("unknown")); got != 1 {
		t.Fatalf("empty action should map to unknown, got %f", got)
	}
	if got := testutil.ToFloat64(m.activeSessions); got != 3 {
		t.Fatalf("expected 3 active sessions, got %f", got)
	}
	if got := testutil.ToFloat64(m.promoStale); got != 1 {
		t.Fatalf("expected 1 stale validation, got %f", got)
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Storefront
	m.ObserveAPICall("x", "ok", time.Second)
	m.IncPromoValidation("apply", "applied")
	m.IncPromoStale()
	m.IncCartMutation("clear")
	m.SetActiveSessions(1)
	m.IncOrder("failed")

	empty := New(nil)
	empty.IncCartMutation("clear")
}

func TestHandlerExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncOrder("placed")

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `storefront_orders_placed_total{outcome="placed"} 1`) {
		t.Fatalf("metrics output missing orders counter: %s", w.Body.String())
	}
}
