package coupon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/cart-challenge/internal/models"
)

func testCoupons() []models.Coupon {
	return []models.Coupon{
		{Code: "AMOUNT5000", Name: "5000원 할인 쿠폰", DiscountType: models.DiscountAmount, DiscountValue: decimal.NewFromInt(5000)},
		{Code: "PERCENT10", Name: "10% 할인 쿠폰", DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(10)},
	}
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry(testCoupons())

	tests := []struct {
		name     string
		code     string
		wantCode string
		wantErr  bool
	}{
		{name: "exact code", code: "AMOUNT5000", wantCode: "AMOUNT5000"},
		{name: "case insensitive", code: "percent10", wantCode: "PERCENT10"},
		{name: "whitespace handling", code: "  AMOUNT5000  ", wantCode: "AMOUNT5000"},
		{name: "unknown code", code: "NOTEXIST", wantErr: true},
		{name: "empty code", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := registry.Lookup(context.Background(), tt.code)

			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Fatalf("Lookup(%q) error = %v, want ErrNotFound", tt.code, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Lookup(%q) unexpected error: %v", tt.code, err)
			}
			if c.Code != tt.wantCode {
				t.Errorf("Lookup(%q) = %s, want %s", tt.code, c.Code, tt.wantCode)
			}
		})
	}
}

func TestRegistry_LookupReturnsCopy(t *testing.T) {
	registry := NewRegistry(testCoupons())

	c, err := registry.Lookup(context.Background(), "AMOUNT5000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Name = "changed"

	again, _ := registry.Lookup(context.Background(), "AMOUNT5000")
	if again.Name != "5000원 할인 쿠폰" {
		t.Errorf("registry entry was mutated through a returned pointer: %q", again.Name)
	}
}

func TestRegistry_LookupCancelledContext(t *testing.T) {
	registry := NewRegistry(testCoupons())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := registry.Lookup(ctx, "AMOUNT5000"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRegistry_At(t *testing.T) {
	registry := NewRegistry(testCoupons())

	c, err := registry.At(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Code != "PERCENT10" {
		t.Errorf("At(1) = %s, want PERCENT10", c.Code)
	}

	for _, i := range []int{-1, 2} {
		if _, err := registry.At(i); !errors.Is(err, ErrNotFound) {
			t.Errorf("At(%d) error = %v, want ErrNotFound", i, err)
		}
	}
}

func TestRegistry_EmptyAndReload(t *testing.T) {
	registry := NewRegistry(nil)

	if _, err := registry.Lookup(context.Background(), "AMOUNT5000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty registry, got %v", err)
	}

	registry.Load(testCoupons())
	if _, err := registry.Lookup(context.Background(), "AMOUNT5000"); err != nil {
		t.Fatalf("expected coupon after reload, got %v", err)
	}
	if got := len(registry.List()); got != 2 {
		t.Errorf("List() length = %d, want 2", got)
	}
}

func TestRegistry_ManyCoupons(t *testing.T) {
	coupons := make([]models.Coupon, 0, 1000)
	for i := 0; i < 1000; i++ {
		coupons = append(coupons, models.Coupon{
			Code:          fmt.Sprintf("CODE%04d", i),
			DiscountType:  models.DiscountAmount,
			DiscountValue: decimal.NewFromInt(int64(i)),
		})
	}
	registry := NewRegistry(coupons)

	for _, code := range []string{"CODE0000", "CODE0500", "CODE0999"} {
		if _, err := registry.Lookup(context.Background(), code); err != nil {
			t.Errorf("Lookup(%q) unexpected error: %v", code, err)
		}
	}
	if _, err := registry.Lookup(context.Background(), "CODE1000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected CODE1000 to be unknown, got %v", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry(testCoupons())

	var wg sync.WaitGroup
	numGoroutines := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			codes := []string{"AMOUNT5000", "PERCENT10", "NOTEXIST"}
			code := codes[n%len(codes)]

			_, err := registry.Lookup(context.Background(), code)
			switch code {
			case "NOTEXIST":
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("expected %s to be unknown", code)
				}
			default:
				if err != nil {
					t.Errorf("expected %s to be found: %v", code, err)
				}
			}
		}(i)
	}

	wg.Wait()

	stats := registry.GetStats()
	if stats["lookups"] != uint64(numGoroutines) {
		t.Errorf("expected %d lookups, got %v", numGoroutines, stats["lookups"])
	}
}

func TestRegistry_GetStats(t *testing.T) {
	registry := NewRegistry(testCoupons())

	stats := registry.GetStats()
	if stats["total_coupons"] != 2 {
		t.Errorf("expected 2 coupons, got %v", stats["total_coupons"])
	}

	byType, ok := stats["by_type"].(map[string]int)
	if !ok {
		t.Fatal("expected by_type to be map[string]int")
	}
	if byType["amount"] != 1 || byType["percentage"] != 1 {
		t.Errorf("unexpected by_type: %v", byType)
	}
}
