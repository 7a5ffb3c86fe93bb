// Package catalog loads the products and coupons offered on the cart page.
package catalog

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
)

// ErrInvalidCatalog wraps every validation failure
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the set of products and coupons offered to shoppers
type Catalog struct {
	Products []models.Product
	Coupons  []models.Coupon
}

// file mirrors the YAML layout of a catalog file
type file struct {
	Products []productRecord `yaml:"products"`
	Coupons  []couponRecord  `yaml:"coupons"`
}

type productRecord struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	Price     string       `yaml:"price"`
	Stock     int          `yaml:"stock"`
	Discounts []tierRecord `yaml:"discounts"`
}

type tierRecord struct {
	Quantity int    `yaml:"quantity"`
	Rate     string `yaml:"rate"`
}

type couponRecord struct {
	Code          string `yaml:"code"`
	Name          string `yaml:"name"`
	DiscountType  string `yaml:"discountType"`
	DiscountValue string `yaml:"discountValue"`
}

// Default returns the catalog the shop starts with when no files are configured
func Default() *Catalog {
	won := decimal.NewFromInt
	rate := decimal.RequireFromString

	return &Catalog{
		Products: []models.Product{
			{ID: "p1", Name: "상품1", Price: won(10000), Stock: 20, Discounts: []models.DiscountTier{{Quantity: 10, Rate: rate("0.1")}}},
			{ID: "p2", Name: "상품2", Price: won(20000), Stock: 20, Discounts: []models.DiscountTier{{Quantity: 10, Rate: rate("0.15")}}},
			{ID: "p3", Name: "상품3", Price: won(30000), Stock: 20, Discounts: []models.DiscountTier{{Quantity: 10, Rate: rate("0.2")}}},
		},
		Coupons: []models.Coupon{
			{Code: "AMOUNT5000", Name: "5000원 할인 쿠폰", DiscountType: models.DiscountAmount, DiscountValue: won(5000)},
			{Code: "PERCENT10", Name: "10% 할인 쿠폰", DiscountType: models.DiscountPercentage, DiscountValue: won(10)},
		},
	}
}

// Load reads catalog files concurrently and merges them in argument order.
// With no paths it returns Default.
func Load(ctx context.Context, paths ...string) (*Catalog, error) {
	if len(paths) == 0 {
		return Default(), nil
	}

	parts := make([]*Catalog, len(paths))
	g, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "read %s", path)
			}
			part, err := Parse(data)
			if err != nil {
				return errors.Wrapf(err, "parse %s", path)
			}
			parts[i] = part
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Catalog{}
	for _, part := range parts {
		merged.Products = append(merged.Products, part.Products...)
		merged.Coupons = append(merged.Coupons, part.Coupons...)
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Parse decodes a single YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}

	c := &Catalog{
		Products: make([]models.Product, 0, len(f.Products)),
		Coupons:  make([]models.Coupon, 0, len(f.Coupons)),
	}

	for _, rec := range f.Products {
		p, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		c.Products = append(c.Products, p)
	}

	for _, rec := range f.Coupons {
		cp, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		c.Coupons = append(c.Coupons, cp)
	}

	return c, nil
}

func (r productRecord) toModel() (models.Product, error) {
	price, err := parseDecimal(r.Price)
	if err != nil {
		return models.Product{}, errors.Wrapf(err, "product %q price", r.ID)
	}

	tiers := make([]models.DiscountTier, 0, len(r.Discounts))
	for _, t := range r.Discounts {
		rate, err := parseDecimal(t.Rate)
		if err != nil {
			return models.Product{}, errors.Wrapf(err, "product %q discount rate", r.ID)
		}
		tiers = append(tiers, models.DiscountTier{Quantity: t.Quantity, Rate: rate})
	}

	return models.Product{
		ID:        strings.TrimSpace(r.ID),
		Name:      r.Name,
		Price:     price,
		Stock:     r.Stock,
		Discounts: tiers,
	}, nil
}

func (r couponRecord) toModel() (models.Coupon, error) {
	value, err := parseDecimal(r.DiscountValue)
	if err != nil {
		return models.Coupon{}, errors.Wrapf(err, "coupon %q value", r.Code)
	}

	return models.Coupon{
		Code:          strings.TrimSpace(r.Code),
		Name:          r.Name,
		DiscountType:  models.DiscountType(strings.ToLower(strings.TrimSpace(r.DiscountType))),
		DiscountValue: value,
	}, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, errors.Wrap(ErrInvalidCatalog, "missing value")
	}
	return decimal.NewFromString(s)
}

// Validate checks the catalog invariants and sorts each product's discount
// tiers by ascending quantity threshold.
func (c *Catalog) Validate() error {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)

	seenProducts := make(map[string]bool, len(c.Products))
	for i := range c.Products {
		p := &c.Products[i]

		switch {
		case p.ID == "":
			return errors.Wrapf(ErrInvalidCatalog, "product #%d has no id", i+1)
		case seenProducts[p.ID]:
			return errors.Wrapf(ErrInvalidCatalog, "duplicate product id %q", p.ID)
		case p.Price.IsNegative():
			return errors.Wrapf(ErrInvalidCatalog, "product %q has a negative price", p.ID)
		case p.Stock < 0:
			return errors.Wrapf(ErrInvalidCatalog, "product %q has negative stock", p.ID)
		}
		seenProducts[p.ID] = true

		for _, t := range p.Discounts {
			if t.Quantity <= 0 {
				return errors.Wrapf(ErrInvalidCatalog, "product %q has a discount threshold of %d", p.ID, t.Quantity)
			}
			if t.Rate.IsNegative() || t.Rate.GreaterThan(one) {
				return errors.Wrapf(ErrInvalidCatalog, "product %q has discount rate %s outside [0, 1]", p.ID, t.Rate)
			}
		}

		sort.SliceStable(p.Discounts, func(a, b int) bool {
			return p.Discounts[a].Quantity < p.Discounts[b].Quantity
		})
	}

	seenCoupons := make(map[string]bool, len(c.Coupons))
	for i, cp := range c.Coupons {
		key := strings.ToUpper(cp.Code)

		switch {
		case cp.Code == "":
			return errors.Wrapf(ErrInvalidCatalog, "coupon #%d has no code", i+1)
		case seenCoupons[key]:
			return errors.Wrapf(ErrInvalidCatalog, "duplicate coupon code %q", cp.Code)
		case !cp.DiscountType.Valid():
			return errors.Wrapf(ErrInvalidCatalog, "coupon %q has unknown discount type %q", cp.Code, cp.DiscountType)
		case cp.DiscountValue.IsNegative():
			return errors.Wrapf(ErrInvalidCatalog, "coupon %q has a negative value", cp.Code)
		case cp.DiscountType == models.DiscountPercentage && cp.DiscountValue.GreaterThan(hundred):
			return errors.Wrapf(ErrInvalidCatalog, "coupon %q takes more than 100%%", cp.Code)
		}
		seenCoupons[key] = true
	}

	return nil
}
