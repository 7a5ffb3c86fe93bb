// Package pricing holds the pure cart calculations: remaining stock,
// quantity discount tiers, coupon application and order totals.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
)

var hundred = decimal.NewFromInt(100)

// RemainingStock returns the product's stock minus the quantity of that
// product already in the cart.
func RemainingStock(items []models.CartItem, product models.Product) int {
	for _, item := range items {
		if item.Product.ID == product.ID {
			return product.Stock - item.Quantity
		}
	}
	return product.Stock
}

// CanAdd reports whether another unit of product may be added to the cart
func CanAdd(items []models.CartItem, product models.Product) bool {
	return RemainingStock(items, product) > 0
}

// MaxDiscount returns the highest rate among tiers, or zero when there are none.
// It is used for display; the rate actually charged comes from MaxApplicableDiscount.
func MaxDiscount(tiers []models.DiscountTier) decimal.Decimal {
	best := decimal.Zero
	for _, tier := range tiers {
		if tier.Rate.GreaterThan(best) {
			best = tier.Rate
		}
	}
	return best
}

// MaxApplicableDiscount returns the highest rate whose quantity threshold
// the item meets.
func MaxApplicableDiscount(item models.CartItem) decimal.Decimal {
	best := decimal.Zero
	for _, tier := range item.Product.Discounts {
		if item.Quantity >= tier.Quantity && tier.Rate.GreaterThan(best) {
			best = tier.Rate
		}
	}
	return best
}

// ItemTotal returns price x quantity with the applicable tier discount taken off
func ItemTotal(item models.CartItem) decimal.Decimal {
	gross := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return gross.Mul(decimal.NewFromInt(1).Sub(MaxApplicableDiscount(item)))
}

// ApplyCoupon takes the coupon off an already tier-discounted total.
// A nil coupon leaves the total unchanged. Amount coupons never push the
// total below zero.
func ApplyCoupon(total decimal.Decimal, coupon *models.Coupon) decimal.Decimal {
	if coupon == nil {
		return total
	}

	switch coupon.DiscountType {
	case models.DiscountAmount:
		return decimal.Max(decimal.Zero, total.Sub(coupon.DiscountValue))
	case models.DiscountPercentage:
		rate := coupon.DiscountValue.Div(hundred)
		return decimal.Max(decimal.Zero, total.Mul(decimal.NewFromInt(1).Sub(rate)))
	default:
		return total
	}
}

// CalculateTotal computes the order summary for the cart. Rounding to whole
// won happens once, after all discounts have been applied.
func CalculateTotal(items []models.CartItem, coupon *models.Coupon) models.Totals {
	before := decimal.Zero
	after := decimal.Zero

	for _, item := range items {
		before = before.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		after = after.Add(ItemTotal(item))
	}

	before = before.Round(0)
	after = ApplyCoupon(after, coupon).Round(0)

	return models.Totals{
		TotalBeforeDiscount: before,
		TotalAfterDiscount:  after,
		TotalDiscount:       before.Sub(after),
	}
}

// UpdateQuantity returns a copy of items with the product's quantity set to
// quantity clamped into [0, stock]. A resulting quantity of zero removes the
// line. Unknown product ids leave the cart unchanged.
func UpdateQuantity(items []models.CartItem, productID string, quantity int) []models.CartItem {
	updated := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product.ID != productID {
			updated = append(updated, item)
			continue
		}

		q := clamp(quantity, 0, item.Product.Stock)
		if q > 0 {
			item.Quantity = q
			updated = append(updated, item)
		}
	}
	return updated
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
