package domain

import "testing"

func TestRecomputeEmpty(t *testing.T) {
	total, count := Recompute(nil)
	if total != 0 || count != 0 {
		t.Fatalf("expected zero totals, got total=%d count=%d", total, count)
	}
}

func TestRecomputeSumsAcrossItems(t *testing.T) {
	items := []LineItem{
		{ID: "sku1", PriceCents: 1000, Quantity: 4},
		{ID: "sku2", PriceCents: 250, Quantity: 2},
	}
	total, count := Recompute(items)
	if total != 4500 {
		t.Fatalf("expected total 4500, got %d", total)
	}
	if count != 6 {
		t.Fatalf("expected count 6, got %d", count)
	}
}

func TestProductValid(t *testing.T) {
	if !(Product{ID: "p1", PriceCents: 0}).Valid() {
		t.Fatalf("zero-price product should be valid")
	}
	if (Product{PriceCents: 100}).Valid() {
		t.Fatalf("product without id should be invalid")
	}
	if (Product{ID: "p1", PriceCents: -1}).Valid() {
		t.Fatalf("negative price should be invalid")
	}
}
