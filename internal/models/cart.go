package models

import "github.com/shopspring/decimal"

// CartItem is a product snapshot together with the quantity in the cart
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Totals is the order summary of a cart, rounded to whole won
type Totals struct {
	TotalBeforeDiscount decimal.Decimal `json:"totalBeforeDiscount"`
	TotalAfterDiscount  decimal.Decimal `json:"totalAfterDiscount"`
	TotalDiscount       decimal.Decimal `json:"totalDiscount"`
}
