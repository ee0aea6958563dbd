package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/savagerise/storefront/internal/models"

	"github.com/stretchr/testify/require"
)

func TestApplyPromoSendsContract(t *testing.T) {
	var captured map[string]interface{}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/promocodes/apply", r.URL.Path)
		auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &captured))
		_, _ = w.Write([]byte(`{"valid":true,"code":"SAVE10","discount_value":20}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, nil)
	req := models.NewPromoApplyRequest("SAVE10", []models.OrderItem{
		{ProductID: "p1", Color: "Noir", Size: "M", Qty: 2, UnitPrice: models.NewMoneyFromInt(100)},
	})
	resp, err := client.ApplyPromo(context.Background(), "tok", req)
	require.NoError(t, err)
	require.True(t, resp.Valid)
	require.Equal(t, "20.00", resp.DiscountValue.String())

	require.Equal(t, "Bearer tok", auth)
	require.Equal(t, "SAVE10", captured["code"])
	require.EqualValues(t, 200, captured["order_total"])
	require.Equal(t, []interface{}{"p1"}, captured["product_ids"])
	require.Equal(t, []interface{}{}, captured["category_ids"])
}

func TestApplyPromoWithoutTokenOmitsHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"valid":false,"reason":"login_required"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, time.Second, nil).ApplyPromo(context.Background(), "", models.PromoApplyRequest{Code: "VIP"})
	require.NoError(t, err)
	require.False(t, resp.Valid)
	require.Equal(t, "login_required", resp.Reason)
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second, nil).Login(context.Background(), "a@b.c", "bad")
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Incorrect username or password", apiErr.Detail)
	require.Equal(t, http.StatusUnauthorized, StatusOf(err))
	require.False(t, IsTransport(err))
}

func TestLoginIsFormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/token", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "user@example.com", r.PostForm.Get("username"))
		require.Equal(t, "secret", r.PostForm.Get("password"))
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
	}))
	defer srv.Close()

	tokens, err := New(srv.URL, time.Second, nil).Login(context.Background(), " user@example.com ", "secret")
	require.NoError(t, err)
	require.Equal(t, "abc", tokens.AccessToken)
}

func TestTimeoutIsClassified(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, 50*time.Millisecond, nil).Health(context.Background())
	require.ErrorIs(t, err, ErrTimeout)
	require.True(t, IsTransport(err))
}

func TestNetworkErrorIsClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second, nil).ListCategories(context.Background())
	require.ErrorIs(t, err, ErrNetwork)
}

func TestGetProductScansList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/", r.URL.Path)
		require.Equal(t, "100", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Tee","price":"49.90","variants":[]},{"id":"p2","name":"Hoodie","price":120}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, nil)
	product, err := client.GetProduct(context.Background(), "p2", 100)
	require.NoError(t, err)
	require.Equal(t, "Hoodie", product.Name)
	require.Equal(t, "120.00", product.Price.String())

	_, err = client.GetProduct(context.Background(), "p9", 100)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveFromWishlistAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/profile/wishlist/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, time.Second, nil).RemoveFromWishlist(context.Background(), "tok", "p1"))
}

func TestExtractDetailFallsBackToBody(t *testing.T) {
	require.Equal(t, "boom", extractDetail([]byte("boom")))
	require.Equal(t, "", extractDetail(nil))
	require.Equal(t, `{"detail":[{"loc":["body"]}]}`, extractDetail([]byte(`{"detail":[{"loc":["body"]}]}`)))
}

func TestApplyPromoEmptyBodyIsInvalidResponse(t *testing.T) {
	for name, body := range map[string]string{"empty": "", "no valid field": `{"code":"SAVE10"}`} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			resp, err := New(srv.URL, time.Second, nil).ApplyPromo(context.Background(), "", models.PromoApplyRequest{Code: "SAVE10"})
			require.ErrorIs(t, err, ErrResponseInvalid)
			require.Nil(t, resp)
		})
	}
}

func TestOversizedResponseIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"`))
		chunk := make([]byte, 64<<10)
		for i := range chunk {
			chunk[i] = 'a'
		}
		for written := 0; written <= maxResponseBytes; written += len(chunk) {
			if _, err := w.Write(chunk); err != nil {
				return
			}
		}
		_, _ = w.Write([]byte(`"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 5*time.Second, nil).Health(context.Background())
	require.ErrorIs(t, err, ErrResponseInvalid)
}
