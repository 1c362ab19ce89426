package domain_test

import (
	"testing"

	"officemart/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func TestFinalPrice(t *testing.T) {
	// no discount: listed price stands
	p := domain.Product{Price: 99.50}
	if got := p.FinalPrice(); got != 99.50 {
		t.Fatalf("want 99.50, got %v", got)
	}

	// discount without original price: listed price stands
	p = domain.Product{Price: 80, Discount: 20}
	if got := p.FinalPrice(); got != 80 {
		t.Fatalf("want 80, got %v", got)
	}

	// discount applied against the original price, rounded to 2 decimals
	p = domain.Product{Price: 80, OriginalPrice: fptr(100), Discount: 20}
	if got := p.FinalPrice(); got != 80.00 {
		t.Fatalf("want 80.00, got %v", got)
	}
	p = domain.Product{Price: 90, OriginalPrice: fptr(99.99), Discount: 15}
	if got := p.FinalPrice(); got != 84.99 {
		t.Fatalf("want 84.99, got %v", got)
	}
}

func TestDiscountAmountAndSaleFlag(t *testing.T) {
	p := domain.Product{Price: 80, OriginalPrice: fptr(100), Discount: 20}
	if got := p.DiscountAmount(); got != 20 {
		t.Fatalf("want 20, got %v", got)
	}
	if !p.IsOnSale() {
		t.Fatal("want on sale")
	}

	p = domain.Product{Price: 80}
	if got := p.DiscountAmount(); got != 0 {
		t.Fatalf("want 0, got %v", got)
	}
	if p.IsOnSale() {
		t.Fatal("want not on sale")
	}
}

func TestStockStatus(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, "Out of Stock"},
		{1, "Low Stock"},
		{4, "Low Stock"},
		{5, "In Stock"},
		{120, "In Stock"},
	}
	for _, tc := range cases {
		p := domain.Product{StockCount: tc.count}
		if got := p.StockStatus(); got != tc.want {
			t.Fatalf("count=%d: want %q, got %q", tc.count, tc.want, got)
		}
	}
}

func TestFeaturesAndSpecificationsDecode(t *testing.T) {
	p := domain.Product{
		FeaturesJSON:       `["Quick-dry ink","Ergonomic grip"]`,
		SpecificationsJSON: `{"Color":"Blue"}`,
	}
	if f := p.Features(); len(f) != 2 || f[0] != "Quick-dry ink" {
		t.Fatalf("bad features: %v", f)
	}
	if s := p.Specifications(); s["Color"] != "Blue" {
		t.Fatalf("bad specs: %v", s)
	}

	// broken or empty columns degrade to empty collections
	p = domain.Product{FeaturesJSON: "{oops", SpecificationsJSON: ""}
	if f := p.Features(); f == nil || len(f) != 0 {
		t.Fatalf("want empty slice, got %v", f)
	}
	if s := p.Specifications(); s == nil || len(s) != 0 {
		t.Fatalf("want empty map, got %v", s)
	}
}

func TestQuoteTotals(t *testing.T) {
	items := []domain.QuoteItem{
		{Price: 24.00, Quantity: 3},
		{Price: 899.00, Quantity: 1},
	}
	if got := items[0].Subtotal(); got != 72.00 {
		t.Fatalf("want 72.00, got %v", got)
	}
	if got := domain.QuoteTotal(items); got != 971.00 {
		t.Fatalf("want 971.00, got %v", got)
	}
	if got := domain.QuoteTotal(nil); got != 0 {
		t.Fatalf("want 0, got %v", got)
	}
}

func TestImageDefaultAltText(t *testing.T) {
	img := domain.ProductImage{Order: 2}
	if got := img.DefaultAltText("Ballpoint Pen Box (50)"); got != "Ballpoint Pen Box (50) - Image 2" {
		t.Fatalf("got %q", got)
	}
	img = domain.ProductImage{AltText: "side view", Order: 2}
	if got := img.DefaultAltText("whatever"); got != "side view" {
		t.Fatalf("explicit alt text must win, got %q", got)
	}
}
