package service

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/pricing"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/repository"
)

// CouponValidator resolves coupon codes for order quotes
type CouponValidator interface {
	Lookup(ctx context.Context, code string) (*models.Coupon, error)
}

// OrderService prices orders without keeping any state
type OrderService struct {
	productRepo     ProductRepository
	couponValidator CouponValidator
}

// ProductRepository interface for product data access
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// NewOrderService creates a new order service
func NewOrderService(productRepo ProductRepository, couponValidator CouponValidator) *OrderService {
	return &OrderService{
		productRepo:     productRepo,
		couponValidator: couponValidator,
	}
}

// CreateOrder prices the requested items with tier discounts and the
// optional coupon. Repeated product ids are merged into one line.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	lines := make([]models.CartItem, 0, len(req.Items))
	index := make(map[string]int)

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		if i, exists := index[item.ProductID]; exists {
			line := &lines[i]
			if item.Quantity > line.Product.Stock-line.Quantity {
				return nil, insufficientStock(line.Product, item.Quantity, line.Quantity)
			}
			line.Quantity += item.Quantity
			continue
		}

		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, errors.Wrapf(ErrInvalidProduct, "product %q", item.ProductID)
			}
			return nil, errors.Wrap(err, "get product")
		}
		if item.Quantity > product.Stock {
			return nil, insufficientStock(*product, item.Quantity, 0)
		}

		index[item.ProductID] = len(lines)
		lines = append(lines, models.CartItem{Product: *product, Quantity: item.Quantity})
	}

	products := make([]models.Product, 0, len(lines))
	for _, line := range lines {
		products = append(products, line.Product)
	}

	var coupon *models.Coupon
	if req.CouponCode != "" && s.couponValidator != nil {
		found, err := s.couponValidator.Lookup(ctx, req.CouponCode)
		if err != nil {
			return nil, ErrInvalidCoupon
		}
		coupon = found
	}

	order := &models.Order{
		ID:       generateOrderID(),
		Items:    req.Items,
		Products: products,
		Coupon:   coupon,
		Totals:   pricing.CalculateTotal(lines, coupon),
	}

	return order, nil
}

func insufficientStock(p models.Product, requested, merged int) error {
	return errors.Wrapf(ErrInsufficientStock, "product %q: %d requested on top of %d, %d in stock",
		p.ID, requested, merged, p.Stock)
}

// generateOrderID generates a unique order ID using UUID
func generateOrderID() string {
	return uuid.New().String()
}
