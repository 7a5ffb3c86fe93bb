package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/middleware"
)

// Handlers groups every HTTP handler served by the API
type Handlers struct {
	Health  *HealthHandler
	Product *ProductHandler
	Coupon  *CouponHandler
	Cart    *CartHandler
	Order   *OrderHandler
}

// RouterOptions configures the middleware stack
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires the middleware stack and all routes
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(chimiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/product", h.Product.ListProducts)
		r.Get("/product/{productId}", h.Product.GetProduct)

		r.Get("/coupon", h.Coupon.ListCoupons)
		r.Get("/coupon/stats", h.Coupon.GetStats)
		r.Get("/coupon/{couponCode}", h.Coupon.GetCoupon)

		r.Post("/cart", h.Cart.CreateCart)
		r.Route("/cart/{cartId}", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.DeleteCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items/{productId}", h.Cart.UpdateQuantity)
			r.Delete("/items/{productId}", h.Cart.RemoveItem)
			r.Put("/coupon", h.Cart.ApplyCoupon)
			r.Delete("/coupon", h.Cart.ClearCoupon)
		})

		r.Post("/order", h.Order.CreateOrder)
	})

	return r
}
