package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/coupon"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/pkg/logger"
)

var version = "dev"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting cart page server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"version", version,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load catalog
	cat, err := catalog.Load(ctx, cfg.Catalog.Files...)
	if err != nil {
		log.Error("failed to load catalog", "files", cfg.Catalog.Files, "error", err)
		os.Exit(1)
	}

	registry := coupon.NewRegistry(cat.Coupons)
	stats := registry.GetStats()
	log.Info("catalog loaded",
		"products", len(cat.Products),
		"total_coupons", stats["total_coupons"],
	)

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository(cat.Products)
	store := cart.NewStore()

	// Initialize services
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(productRepo, registry, store)
	orderService := service.NewOrderService(productRepo, registry)

	// Create router
	r := handlers.NewRouter(handlers.Handlers{
		Health:  handlers.NewHealthHandler(log, version, store.Len),
		Product: handlers.NewProductHandler(productService, log),
		Coupon:  handlers.NewCouponHandler(registry, log),
		Cart:    handlers.NewCartHandler(cartService, log),
		Order:   handlers.NewOrderHandler(orderService, log),
	}, handlers.RouterOptions{
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
	})

	if cfg.Cart.IdleTimeout > 0 {
		go evictIdleCarts(ctx, log, store, cfg.Cart.IdleTimeout, cfg.Cart.EvictInterval)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// evictIdleCarts drops abandoned cart sessions until ctx is done
func evictIdleCarts(ctx context.Context, log *slog.Logger, store *cart.Store, idle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Evict(idle); n > 0 {
				log.Debug("evicted idle carts", "count", n, "active", store.Len())
			}
		}
	}
}
