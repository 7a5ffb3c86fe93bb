package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger  *slog.Logger
	carts   func() int
	version string
}

// NewHealthHandler creates a new health handler. carts reports the number
// of live cart sessions and may be nil.
func NewHealthHandler(logger *slog.Logger, version string, carts func() int) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		carts:   carts,
		version: version,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	ActiveCarts int       `json:"activeCarts"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
	if h.carts != nil {
		response.ActiveCarts = h.carts()
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
