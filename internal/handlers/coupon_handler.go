package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/coupon"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/view"
)

// couponRegistry is the interface for coupon lookup
type couponRegistry interface {
	Lookup(ctx context.Context, code string) (*models.Coupon, error)
	List() []models.Coupon
	GetStats() map[string]interface{}
}

// CouponHandler handles HTTP requests for coupons
type CouponHandler struct {
	registry couponRegistry
	logger   *slog.Logger
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(registry couponRegistry, logger *slog.Logger) *CouponHandler {
	return &CouponHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListCoupons handles GET /api/coupon
// Returns the coupon select options in display order
func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, view.BuildCouponOptions(h.registry.List()), h.logger)
}

// GetCoupon handles GET /api/coupon/{couponCode}
func (h *CouponHandler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	couponCode := chi.URLParam(r, "couponCode")

	c, err := h.registry.Lookup(r.Context(), couponCode)
	if err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			WriteJSON(w, http.StatusNotFound, map[string]interface{}{
				"valid":   false,
				"coupon":  couponCode,
				"message": "Coupon not found or invalid",
			}, h.logger)
			return
		}

		h.logger.Error("failed to look up coupon", "coupon", couponCode, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  true,
		"coupon": c,
		"label":  view.CouponValueLabel(*c),
	}, h.logger)
}

// GetStats handles GET /api/coupon/stats (for debugging/monitoring)
func (h *CouponHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.registry.GetStats(), h.logger)
}
