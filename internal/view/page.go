// Package view builds the cart page: product cards, cart lines, coupon
// options and the order summary, ready to be rendered by any client.
package view

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/pricing"
)

// Button variants
const (
	VariantPrimary   = "primary"
	VariantSecondary = "secondary"
	VariantDanger    = "danger"
)

// Button is a clickable action on the page
type Button struct {
	Label    string `json:"label"`
	Variant  string `json:"variant"`
	Disabled bool   `json:"disabled"`
}

// ProductCard is one entry of the product list
type ProductCard struct {
	ID               string          `json:"id"`
	TestID           string          `json:"testId"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	PriceLabel       string          `json:"priceLabel"`
	RemainingStock   int             `json:"remainingStock"`
	StockLabel       string          `json:"stockLabel"`
	InStock          bool            `json:"inStock"`
	MaxDiscountRate  decimal.Decimal `json:"maxDiscountRate"`
	MaxDiscountLabel string          `json:"maxDiscountLabel,omitempty"`
	DiscountLabels   []string        `json:"discountLabels"`
	AddButton        Button          `json:"addButton"`
}

// CartLine is one entry of the cart contents
type CartLine struct {
	ProductID            string          `json:"productId"`
	Name                 string          `json:"name"`
	UnitPrice            decimal.Decimal `json:"unitPrice"`
	Quantity             int             `json:"quantity"`
	QuantityLabel        string          `json:"quantityLabel"`
	AppliedDiscount      decimal.Decimal `json:"appliedDiscount"`
	AppliedDiscountLabel string          `json:"appliedDiscountLabel,omitempty"`
	LineTotal            decimal.Decimal `json:"lineTotal"`
	Buttons              []Button        `json:"buttons"`
}

// CouponOption is one entry of the coupon select. Index matches the
// position in the coupon list.
type CouponOption struct {
	Index int    `json:"index"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Summary is the order summary card
type Summary struct {
	models.Totals
	TotalBeforeDiscountLabel string `json:"totalBeforeDiscountLabel"`
	TotalDiscountLabel       string `json:"totalDiscountLabel"`
	TotalAfterDiscountLabel  string `json:"totalAfterDiscountLabel"`
}

// CartPage is everything the cart page shows
type CartPage struct {
	CartID              string         `json:"cartId,omitempty"`
	Title               string         `json:"title"`
	Products            []ProductCard  `json:"products"`
	Lines               []CartLine     `json:"lines"`
	CouponPlaceholder   string         `json:"couponPlaceholder"`
	CouponOptions       []CouponOption `json:"couponOptions"`
	SelectedCoupon      *models.Coupon `json:"selectedCoupon,omitempty"`
	SelectedCouponLabel string         `json:"selectedCouponLabel,omitempty"`
	Summary             Summary        `json:"summary"`
}

// BuildCartPage assembles the page for the given catalog and cart
func BuildCartPage(products []models.Product, coupons []models.Coupon, c *cart.Cart) CartPage {
	items := c.Items()

	page := CartPage{
		Title:             "장바구니",
		Products:          make([]ProductCard, 0, len(products)),
		Lines:             make([]CartLine, 0, len(items)),
		CouponPlaceholder: "쿠폰 선택",
		CouponOptions:     BuildCouponOptions(coupons),
	}

	for _, p := range products {
		page.Products = append(page.Products, BuildProductCard(items, p))
	}

	for _, item := range items {
		page.Lines = append(page.Lines, BuildCartLine(item))
	}

	if selected := c.SelectedCoupon(); selected != nil {
		page.SelectedCoupon = selected
		page.SelectedCouponLabel = fmt.Sprintf("적용된 쿠폰: %s(%s 할인)", selected.Name, CouponValueLabel(*selected))
	}

	page.Summary = BuildSummary(c.CalculateTotal())

	return page
}

// BuildProductCard renders a catalog product against the current cart
func BuildProductCard(items []models.CartItem, p models.Product) ProductCard {
	remaining := pricing.RemainingStock(items, p)

	card := ProductCard{
		ID:              p.ID,
		TestID:          "product-" + p.ID,
		Name:            p.Name,
		Price:           p.Price,
		PriceLabel:      Won(p.Price),
		RemainingStock:  remaining,
		StockLabel:      fmt.Sprintf("재고: %d개", remaining),
		InStock:         remaining > 0,
		MaxDiscountRate: pricing.MaxDiscount(p.Discounts),
		DiscountLabels:  make([]string, 0, len(p.Discounts)),
		AddButton: Button{
			Label:    "장바구니에 추가",
			Variant:  VariantPrimary,
			Disabled: remaining <= 0,
		},
	}

	if len(p.Discounts) > 0 {
		card.MaxDiscountLabel = fmt.Sprintf("최대 %s%% 할인", Percent(card.MaxDiscountRate))
	}
	for _, tier := range p.Discounts {
		card.DiscountLabels = append(card.DiscountLabels, fmt.Sprintf("%d개 이상: %s%% 할인", tier.Quantity, Percent(tier.Rate)))
	}

	if remaining <= 0 {
		card.AddButton.Label = "품절"
		card.AddButton.Variant = VariantSecondary
	}

	return card
}

// BuildCartLine renders one cart item
func BuildCartLine(item models.CartItem) CartLine {
	applied := pricing.MaxApplicableDiscount(item)

	line := CartLine{
		ProductID:       item.Product.ID,
		Name:            item.Product.Name,
		UnitPrice:       item.Product.Price,
		Quantity:        item.Quantity,
		QuantityLabel:   fmt.Sprintf("%s원 x %d", item.Product.Price.String(), item.Quantity),
		AppliedDiscount: applied,
		LineTotal:       pricing.ItemTotal(item).Round(0),
		Buttons: []Button{
			{Label: "-", Variant: VariantSecondary},
			{Label: "+", Variant: VariantSecondary},
			{Label: "삭제", Variant: VariantDanger},
		},
	}

	if applied.IsPositive() {
		line.AppliedDiscountLabel = fmt.Sprintf("(%s%% 할인 적용)", Percent(applied))
	}

	return line
}

// BuildCouponOptions renders the coupon select options in registry order
func BuildCouponOptions(coupons []models.Coupon) []CouponOption {
	options := make([]CouponOption, 0, len(coupons))
	for i, cp := range coupons {
		options = append(options, CouponOption{
			Index: i,
			Code:  cp.Code,
			Label: fmt.Sprintf("%s - %s", cp.Name, CouponValueLabel(cp)),
		})
	}
	return options
}

// CouponValueLabel renders a coupon's value: 5000원 or 10%
func CouponValueLabel(c models.Coupon) string {
	if c.DiscountType == models.DiscountAmount {
		return c.DiscountValue.String() + "원"
	}
	return c.DiscountValue.String() + "%"
}

// BuildSummary renders the order summary card
func BuildSummary(t models.Totals) Summary {
	return Summary{
		Totals:                   t,
		TotalBeforeDiscountLabel: "상품 금액: " + Won(t.TotalBeforeDiscount),
		TotalDiscountLabel:       "할인 금액: " + Won(t.TotalDiscount),
		TotalAfterDiscountLabel:  "최종 결제 금액: " + Won(t.TotalAfterDiscount),
	}
}
