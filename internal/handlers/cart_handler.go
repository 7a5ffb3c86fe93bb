package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/view"
)

// CartHandler serves the cart page and its actions
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type applyCouponRequest struct {
	Code  string `json:"code"`
	Index *int   `json:"index,omitempty"` // coupon option position; -1 clears
}

// CreateCart handles POST /api/cart
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.CreateCart(r.Context())
	if err != nil {
		h.writeCartError(w, "", err)
		return
	}

	h.logger.Info("cart created", "cart_id", page.CartID)
	WriteJSON(w, http.StatusCreated, page, h.logger)
}

// GetCart handles GET /api/cart/{cartId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	page, err := h.service.GetCart(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	WriteJSON(w, http.StatusOK, page, h.logger)
}

// DeleteCart handles DELETE /api/cart/{cartId}
func (h *CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	if err := h.service.DeleteCart(r.Context(), cartID); err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/cart/{cartId}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		h.logger.Warn("invalid add item request", "cart_id", cartID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	page, err := h.service.AddItem(r.Context(), cartID, req.ProductID)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	WriteJSON(w, http.StatusOK, page, h.logger)
}

// UpdateQuantity handles PUT /api/cart/{cartId}/items/{productId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")
	productID := chi.URLParam(r, "productId")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		h.logger.Warn("invalid update quantity request", "cart_id", cartID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	page, err := h.service.UpdateQuantity(r.Context(), cartID, productID, *req.Quantity)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	WriteJSON(w, http.StatusOK, page, h.logger)
}

// RemoveItem handles DELETE /api/cart/{cartId}/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")
	productID := chi.URLParam(r, "productId")

	page, err := h.service.RemoveItem(r.Context(), cartID, productID)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	WriteJSON(w, http.StatusOK, page, h.logger)
}

// ApplyCoupon handles PUT /api/cart/{cartId}/coupon
// The coupon is picked by option index when given, else by code. An empty
// code clears the selected coupon.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid apply coupon request", "cart_id", cartID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	var page *view.CartPage
	var err error
	if req.Index != nil {
		page, err = h.service.ApplyCouponAt(r.Context(), cartID, *req.Index)
	} else {
		page, err = h.service.ApplyCoupon(r.Context(), cartID, req.Code)
	}
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	WriteJSON(w, http.StatusOK, page, h.logger)
}

// ClearCoupon handles DELETE /api/cart/{cartId}/coupon
func (h *CartHandler) ClearCoupon(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	page, err := h.service.ApplyCoupon(r.Context(), cartID, "")
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	WriteJSON(w, http.StatusOK, page, h.logger)
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, cartID string, err error) {
	switch {
	case errors.Is(err, service.ErrCartNotFound):
		h.logger.Info("cart not found", "cart_id", cartID)
		WriteError(w, http.StatusNotFound, "Cart not found", h.logger)
	case errors.Is(err, service.ErrItemNotInCart):
		WriteError(w, http.StatusNotFound, "Product is not in the cart", h.logger)
	case errors.Is(err, service.ErrInvalidProduct):
		WriteError(w, http.StatusBadRequest, "Invalid product", h.logger)
	case errors.Is(err, service.ErrInvalidCoupon):
		WriteError(w, http.StatusBadRequest, "Coupon code is not valid", h.logger)
	case errors.Is(err, service.ErrOutOfStock):
		WriteError(w, http.StatusConflict, "Product is sold out", h.logger)
	default:
		h.logger.Error("cart operation failed", "cart_id", cartID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
