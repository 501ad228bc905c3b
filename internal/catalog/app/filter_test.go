package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmaulana/storefront/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func decp(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func demoCatalog() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Vintage Camera", Price: dec("250.00"), Category: "electronics"},
		{ID: "2", Name: "Leather Satchel", Price: dec("120.00"), Category: "bags"},
		{ID: "3", Name: "Espresso Machine", Price: dec("350.00"), Category: "home"},
		{ID: "4", Name: "Noise-Cancelling Headphones", Price: dec("299.99"), Category: "electronics"},
		{ID: "5", Name: "Handcrafted Mug", Price: dec("25.00"), Category: "home"},
		{ID: "6", Name: "Travel Backpack", Price: dec("95.00"), Category: "bags"},
		{ID: "7", Name: "Smart Watch", Price: dec("180.00"), Category: "electronics"},
		{ID: "8", Name: "Throw Blanket", Price: dec("50.00"), Category: "home"},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterCategory(t *testing.T) {
	got := Filter(demoCatalog(), domain.FilterSpec{Category: "electronics"})

	want := []string{"1", "4", "7"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Fatalf("electronics filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterCategoryIsCaseSensitive(t *testing.T) {
	got := Filter(demoCatalog(), domain.FilterSpec{Category: "Electronics"})
	if len(got) != 0 {
		t.Fatalf("expected no matches for mismatched case, got %v", ids(got))
	}
}

func TestFilterPriceRange(t *testing.T) {
	t.Run("bounds are inclusive", func(t *testing.T) {
		got := Filter(demoCatalog(), domain.FilterSpec{MinPrice: decp("50"), MaxPrice: decp("120")})
		want := []string{"2", "6", "8"}
		if diff := cmp.Diff(want, ids(got)); diff != "" {
			t.Fatalf("price range mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil max is unbounded", func(t *testing.T) {
		got := Filter(demoCatalog(), domain.FilterSpec{MinPrice: decp("299.99")})
		want := []string{"3", "4"}
		if diff := cmp.Diff(want, ids(got)); diff != "" {
			t.Fatalf("open-ended range mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil min defaults to zero", func(t *testing.T) {
		got := Filter(demoCatalog(), domain.FilterSpec{MaxPrice: decp("25.00")})
		want := []string{"5"}
		if diff := cmp.Diff(want, ids(got)); diff != "" {
			t.Fatalf("max-only range mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestFilterSearchTerm(t *testing.T) {
	t.Run("case-insensitive substring", func(t *testing.T) {
		got := Filter(demoCatalog(), domain.FilterSpec{SearchTerm: "CAMERA"})
		want := []string{"1"}
		if diff := cmp.Diff(want, ids(got)); diff != "" {
			t.Fatalf("search mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		got := Filter(demoCatalog(), domain.FilterSpec{SearchTerm: "zeppelin"})
		if len(got) != 0 {
			t.Fatalf("expected empty result, got %v", ids(got))
		}
	})
}

func TestFilterPredicatesAreConjunctive(t *testing.T) {
	spec := domain.FilterSpec{
		Category:   "electronics",
		MinPrice:   decp("200"),
		MaxPrice:   decp("300"),
		SearchTerm: "headphones",
	}

	got := Filter(demoCatalog(), spec)
	want := []string{"4"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Fatalf("conjunctive filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	specs := []domain.FilterSpec{
		{},
		{Category: "home"},
		{MinPrice: decp("51"), MaxPrice: decp("150")},
		{SearchTerm: "e"},
		{Category: "bags", MaxPrice: decp("100"), SearchTerm: "pack"},
	}

	catalog := demoCatalog()
	for _, spec := range specs {
		once := Filter(catalog, spec)
		twice := Filter(once, spec)
		if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
			t.Fatalf("filter not idempotent for %+v (-once +twice):\n%s", spec, diff)
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	catalog := demoCatalog()
	got := Filter(catalog, domain.FilterSpec{Category: "bags"})

	if diff := cmp.Diff(ids(demoCatalog()), ids(catalog)); diff != "" {
		t.Fatalf("input catalog mutated (-want +got):\n%s", diff)
	}
	if len(got) > 0 {
		got[0].Name = "changed"
		if catalog[1].Name == "changed" {
			t.Fatal("result aliases the input slice")
		}
	}
}
