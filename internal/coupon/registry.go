package coupon

import (
	"context"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
)

// ErrNotFound is returned when no coupon matches a code
var ErrNotFound = errors.New("coupon not found")

// falsePositiveRate of the code prefilter
const falsePositiveRate = 0.01

// Registry looks up coupons by code. Codes match case-insensitively after
// trimming whitespace.
type Registry struct {
	mu      sync.RWMutex
	coupons []models.Coupon
	byCode  map[string]int
	filter  *bloom.BloomFilter

	lookups  uint64
	filtered uint64
}

// NewRegistry creates a registry holding coupons in the given order
func NewRegistry(coupons []models.Coupon) *Registry {
	r := &Registry{}
	r.Load(coupons)
	return r
}

// Load replaces the registry contents
func (r *Registry) Load(coupons []models.Coupon) {
	filter := bloom.NewWithEstimates(uint(max(len(coupons), 1)), falsePositiveRate)
	byCode := make(map[string]int, len(coupons))
	list := make([]models.Coupon, len(coupons))
	copy(list, coupons)

	for i, c := range list {
		key := normalize(c.Code)
		filter.AddString(key)
		byCode[key] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.coupons = list
	r.byCode = byCode
	r.filter = filter
}

// Lookup returns the coupon registered under code
func (r *Registry) Lookup(ctx context.Context, code string) (*models.Coupon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := normalize(code)
	if key == "" {
		return nil, errors.Wrap(ErrNotFound, "empty code")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lookups++
	if !r.filter.TestString(key) {
		r.filtered++
		return nil, errors.Wrapf(ErrNotFound, "code %q", code)
	}

	i, ok := r.byCode[key]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "code %q", code)
	}

	c := r.coupons[i]
	return &c, nil
}

// At returns the coupon at index i of the registry's list, as the coupon
// select on the cart page refers to options by position.
func (r *Registry) At(i int) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i < 0 || i >= len(r.coupons) {
		return nil, errors.Wrapf(ErrNotFound, "index %d", i)
	}
	c := r.coupons[i]
	return &c, nil
}

// List returns the coupons in registration order
func (r *Registry) List() []models.Coupon {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Coupon, len(r.coupons))
	copy(list, r.coupons)
	return list
}

// GetStats returns statistics about the registry
func (r *Registry) GetStats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byType := make(map[string]int)
	for _, c := range r.coupons {
		byType[string(c.DiscountType)]++
	}

	return map[string]interface{}{
		"total_coupons":     len(r.coupons),
		"by_type":           byType,
		"lookups":           r.lookups,
		"filtered_lookups":  r.filtered,
		"filter_capacity":   r.filter.Cap(),
		"filter_hash_count": r.filter.K(),
	}
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
