package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/view"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) view.CartPage {
	t.Helper()

	var page view.CartPage
	require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
	return page
}

func TestCartHandler_Flow(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/api/cart", "")
	require.Equal(t, http.StatusCreated, w.Code)
	page := decodePage(t, w)
	require.NotEmpty(t, page.CartID)
	assert.Equal(t, "장바구니", page.Title)
	assert.Len(t, page.Products, 3)
	assert.Len(t, page.CouponOptions, 2)

	base := "/api/cart/" + page.CartID

	for i := 0; i < 3; i++ {
		w = do(t, r, http.MethodPost, base+"/items", `{"productId":"p2"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}
	page = decodePage(t, w)
	require.Len(t, page.Lines, 1)
	assert.Equal(t, 3, page.Lines[0].Quantity)
	assert.Equal(t, 17, page.Products[1].RemainingStock)
	assert.Equal(t, "재고: 17개", page.Products[1].StockLabel)

	w = do(t, r, http.MethodPut, base+"/items/p2", `{"quantity":10}`)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodePage(t, w)
	assert.Equal(t, "(15% 할인 적용)", page.Lines[0].AppliedDiscountLabel)

	w = do(t, r, http.MethodPut, base+"/coupon", `{"code":"PERCENT10"}`)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodePage(t, w)
	require.NotNil(t, page.SelectedCoupon)
	assert.Equal(t, "적용된 쿠폰: 10% 할인 쿠폰(10% 할인)", page.SelectedCouponLabel)
	assert.True(t, page.Summary.TotalAfterDiscount.Equal(decimal.NewFromInt(153000)))
	assert.Equal(t, "최종 결제 금액: 153,000원", page.Summary.TotalAfterDiscountLabel)

	w = do(t, r, http.MethodDelete, base+"/coupon", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodePage(t, w).SelectedCoupon)

	w = do(t, r, http.MethodPut, base+"/coupon", `{"index":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodePage(t, w)
	require.NotNil(t, page.SelectedCoupon)
	assert.Equal(t, "AMOUNT5000", page.SelectedCoupon.Code)
	assert.True(t, page.Summary.TotalAfterDiscount.Equal(decimal.NewFromInt(165000)))

	w = do(t, r, http.MethodPut, base+"/coupon", `{"index":-1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodePage(t, w).SelectedCoupon)

	w = do(t, r, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, page.CartID, decodePage(t, w).CartID)

	w = do(t, r, http.MethodDelete, base+"/items/p2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodePage(t, w).Lines)

	w = do(t, r, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_SoldOut(t *testing.T) {
	r := newTestRouter()

	page := decodePage(t, do(t, r, http.MethodPost, "/api/cart", ""))
	base := "/api/cart/" + page.CartID

	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, base+"/items", `{"productId":"p1"}`).Code)

	w := do(t, r, http.MethodPut, base+"/items/p1", `{"quantity":20}`)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodePage(t, w)
	assert.True(t, page.Products[0].AddButton.Disabled)
	assert.Equal(t, "품절", page.Products[0].AddButton.Label)

	w = do(t, r, http.MethodPost, base+"/items", `{"productId":"p1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCartHandler_Errors(t *testing.T) {
	r := newTestRouter()

	page := decodePage(t, do(t, r, http.MethodPost, "/api/cart", ""))
	base := "/api/cart/" + page.CartID

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{"unknown cart", http.MethodGet, "/api/cart/nope", "", http.StatusNotFound, "Cart not found"},
		{"add to unknown cart", http.MethodPost, "/api/cart/nope/items", `{"productId":"p1"}`, http.StatusNotFound, "Cart not found"},
		{"missing product id", http.MethodPost, base + "/items", `{}`, http.StatusBadRequest, "Invalid request body"},
		{"malformed body", http.MethodPost, base + "/items", `{`, http.StatusBadRequest, "Invalid request body"},
		{"unknown product", http.MethodPost, base + "/items", `{"productId":"p404"}`, http.StatusBadRequest, "Invalid product"},
		{"missing quantity", http.MethodPut, base + "/items/p1", `{}`, http.StatusBadRequest, "Invalid request body"},
		{"update line not in cart", http.MethodPut, base + "/items/p1", `{"quantity":2}`, http.StatusNotFound, "Product is not in the cart"},
		{"remove line not in cart", http.MethodDelete, base + "/items/p1", "", http.StatusNotFound, "Product is not in the cart"},
		{"unknown coupon", http.MethodPut, base + "/coupon", `{"code":"NOPE"}`, http.StatusBadRequest, "Coupon code is not valid"},
		{"coupon option out of range", http.MethodPut, base + "/coupon", `{"index":5}`, http.StatusBadRequest, "Coupon code is not valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedError, response["error"])
		})
	}
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter()

	do(t, r, http.MethodPost, "/api/cart", "")

	w := do(t, r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var health HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.Equal(t, 1, health.ActiveCarts)
}

func TestRouter_CORS(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/product", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet))
}
