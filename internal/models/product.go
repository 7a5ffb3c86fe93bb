package models

import "github.com/shopspring/decimal"

// Product represents an item the shopper can put into the cart
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Discounts []DiscountTier  `json:"discounts"`
}

// DiscountTier grants a per-unit discount rate once the cart holds at
// least Quantity units of the product. Rate is a fraction in [0, 1].
type DiscountTier struct {
	Quantity int             `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
}
