package service

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/view"
)

// CouponRegistry looks up and lists the coupons offered on the cart page
type CouponRegistry interface {
	Lookup(ctx context.Context, code string) (*models.Coupon, error)
	At(i int) (*models.Coupon, error)
	List() []models.Coupon
}

// CartService drives the cart page: it mutates session carts and renders
// the page after every change.
type CartService struct {
	products repository.ProductRepository
	coupons  CouponRegistry
	store    *cart.Store
}

// NewCartService creates a new cart service
func NewCartService(products repository.ProductRepository, coupons CouponRegistry, store *cart.Store) *CartService {
	return &CartService{
		products: products,
		coupons:  coupons,
		store:    store,
	}
}

// CreateCart starts an empty cart session
func (s *CartService) CreateCart(ctx context.Context) (*view.CartPage, error) {
	id, c := s.store.Create(ctx)
	return s.render(ctx, id, c)
}

// GetCart renders the cart page for a session
func (s *CartService) GetCart(ctx context.Context, cartID string) (*view.CartPage, error) {
	c, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, cartID, c)
}

// DeleteCart ends a cart session
func (s *CartService) DeleteCart(ctx context.Context, cartID string) error {
	return s.store.Delete(ctx, cartID)
}

// AddItem adds one unit of a catalog product to the cart
func (s *CartService) AddItem(ctx context.Context, cartID, productID string) (*view.CartPage, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrapf(ErrInvalidProduct, "product %q", productID)
		}
		return nil, errors.Wrap(err, "get product")
	}

	c, err := s.store.Update(ctx, cartID, func(c *cart.Cart) error {
		if !c.AddToCart(*product) {
			return errors.Wrapf(ErrOutOfStock, "product %q", productID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, cartID, c)
}

// UpdateQuantity sets a line's quantity; it is clamped to the product's
// stock and zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*view.CartPage, error) {
	c, err := s.store.Update(ctx, cartID, func(c *cart.Cart) error {
		if c.Quantity(productID) == 0 {
			return errors.Wrapf(ErrItemNotInCart, "product %q", productID)
		}
		c.UpdateQuantity(productID, quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, cartID, c)
}

// RemoveItem drops a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (*view.CartPage, error) {
	c, err := s.store.Update(ctx, cartID, func(c *cart.Cart) error {
		if c.Quantity(productID) == 0 {
			return errors.Wrapf(ErrItemNotInCart, "product %q", productID)
		}
		c.RemoveFromCart(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, cartID, c)
}

// ApplyCoupon selects the coupon with the given code. An empty code clears
// the selection, like picking the placeholder option.
func (s *CartService) ApplyCoupon(ctx context.Context, cartID, code string) (*view.CartPage, error) {
	var coupon *models.Coupon
	if strings.TrimSpace(code) != "" {
		found, err := s.coupons.Lookup(ctx, code)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidCoupon, "code %q: %v", code, err)
		}
		coupon = found
	}

	c, err := s.store.Update(ctx, cartID, func(c *cart.Cart) error {
		c.ApplyCoupon(coupon)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, cartID, c)
}

// ApplyCouponAt selects the coupon at position index of the coupon options.
// A negative index clears the selection.
func (s *CartService) ApplyCouponAt(ctx context.Context, cartID string, index int) (*view.CartPage, error) {
	var coupon *models.Coupon
	if index >= 0 {
		found, err := s.coupons.At(index)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidCoupon, "option %d: %v", index, err)
		}
		coupon = found
	}

	c, err := s.store.Update(ctx, cartID, func(c *cart.Cart) error {
		c.ApplyCoupon(coupon)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, cartID, c)
}

func (s *CartService) render(ctx context.Context, cartID string, c *cart.Cart) (*view.CartPage, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	page := view.BuildCartPage(products, s.coupons.List(), c)
	page.CartID = cartID
	return &page, nil
}
