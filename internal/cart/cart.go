// Package cart holds the shopper's cart state and the in-memory session
// store that keeps one cart per session id.
package cart

import (
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/pricing"
)

// Cart is the shopper's current selection: ordered items unique by
// product id and an optional whole-order coupon.
//
// A Cart is not safe for concurrent use; Store serializes access.
type Cart struct {
	items  []models.CartItem
	coupon *models.Coupon
}

// New creates an empty cart
func New() *Cart {
	return &Cart{items: make([]models.CartItem, 0)}
}

// Items returns a copy of the cart lines in insertion order
func (c *Cart) Items() []models.CartItem {
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Quantity returns how many units of the product are in the cart
func (c *Cart) Quantity(productID string) int {
	for _, item := range c.items {
		if item.Product.ID == productID {
			return item.Quantity
		}
	}
	return 0
}

// AddToCart adds one unit of product. It does nothing and returns false
// when no stock remains.
func (c *Cart) AddToCart(product models.Product) bool {
	if !pricing.CanAdd(c.items, product) {
		return false
	}

	for i, item := range c.items {
		if item.Product.ID == product.ID {
			c.items[i].Quantity = min(item.Quantity+1, product.Stock)
			return true
		}
	}

	c.items = append(c.items, models.CartItem{Product: product, Quantity: 1})
	return true
}

// RemoveFromCart drops the product's line. Unknown ids are ignored.
func (c *Cart) RemoveFromCart(productID string) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// UpdateQuantity sets the product's quantity, clamped to its stock.
// Zero or less removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.items = pricing.UpdateQuantity(c.items, productID, quantity)
}

// ApplyCoupon selects coupon for the order; nil clears the selection.
func (c *Cart) ApplyCoupon(coupon *models.Coupon) {
	if coupon == nil {
		c.coupon = nil
		return
	}
	selected := *coupon
	c.coupon = &selected
}

// SelectedCoupon returns the applied coupon or nil
func (c *Cart) SelectedCoupon() *models.Coupon {
	if c.coupon == nil {
		return nil
	}
	selected := *c.coupon
	return &selected
}

// CalculateTotal returns the order summary for the current selection
func (c *Cart) CalculateTotal() models.Totals {
	return pricing.CalculateTotal(c.items, c.coupon)
}

// Clone returns a deep enough copy for callers that must not observe
// later mutations.
func (c *Cart) Clone() *Cart {
	return &Cart{
		items:  c.Items(),
		coupon: c.SelectedCoupon(),
	}
}
