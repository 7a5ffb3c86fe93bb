package service

import (
	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/cart"
)

var (
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidCoupon     = errors.New("coupon code is not valid")
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
	ErrOutOfStock        = errors.New("product is sold out")
	ErrItemNotInCart     = errors.New("product is not in the cart")
	ErrCartNotFound      = cart.ErrNotFound
)
