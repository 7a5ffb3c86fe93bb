package handlers

import (
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/coupon"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/pkg/logger"
)

// newTestRouter wires the full API against the default catalog
func newTestRouter() http.Handler {
	log := logger.New("error")
	cat := catalog.Default()

	productRepo := repository.NewInMemoryProductRepository(cat.Products)
	registry := coupon.NewRegistry(cat.Coupons)
	store := cart.NewStore()

	return NewRouter(Handlers{
		Health:  NewHealthHandler(log, "test", store.Len),
		Product: NewProductHandler(service.NewProductService(productRepo), log),
		Coupon:  NewCouponHandler(registry, log),
		Cart:    NewCartHandler(service.NewCartService(productRepo, registry, store), log),
		Order:   NewOrderHandler(service.NewOrderService(productRepo, registry), log),
	}, RouterOptions{Logger: log})
}
