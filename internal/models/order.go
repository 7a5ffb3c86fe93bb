package models

// OrderRequest asks for a priced quote of a set of items
type OrderRequest struct {
	CouponCode string      `json:"couponCode,omitempty"`
	Items      []OrderItem `json:"items"`
}

// OrderItem represents a single item in an order
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order is a priced quote. Nothing is reserved or stored.
type Order struct {
	ID       string      `json:"id"`
	Items    []OrderItem `json:"items"`
	Products []Product   `json:"products"`
	Coupon   *Coupon     `json:"coupon,omitempty"`
	Totals
}
