package models

import "github.com/shopspring/decimal"

// DiscountType selects how a coupon's DiscountValue is applied
type DiscountType string

const (
	// DiscountAmount subtracts DiscountValue won from the order total.
	DiscountAmount DiscountType = "amount"
	// DiscountPercentage takes DiscountValue percent off the order total.
	DiscountPercentage DiscountType = "percentage"
)

// Valid reports whether t is a known discount type
func (t DiscountType) Valid() bool {
	return t == DiscountAmount || t == DiscountPercentage
}

// Coupon is a discount code applicable to the whole order
type Coupon struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
}
