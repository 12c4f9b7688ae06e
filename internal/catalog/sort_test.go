package catalog

import (
	"testing"
	"time"
)

func TestSortPriceAscending(t *testing.T) {
	products := []Product{
		priced("mid", 19.99, 0),
		priced("low", 5.00, 0),
		priced("high", 49.99, 0),
	}

	got := SortProducts(products, SortPriceAsc)
	want := []string{"low", "mid", "high"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("SortProducts(price-asc) = %v, want %v", names(got), want)
		}
	}
}

func TestSortKeys(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Product{Name: "a", FinalPrice: 30, FinalSavingsPercent: 10, Rating: 4.8, RatingCount: 50, LastUpdated: base}
	b := Product{Name: "b", FinalPrice: 10, FinalSavingsPercent: 50, Rating: 3.1, RatingCount: 900, LastUpdated: base.Add(48 * time.Hour)}
	c := Product{Name: "c", FinalPrice: 20, FinalSavingsPercent: 25, Rating: 4.2, RatingCount: 200, LastUpdated: base.Add(24 * time.Hour)}
	products := []Product{a, b, c}

	tests := []struct {
		key  string
		want []string
	}{
		{SortNewest, []string{"b", "c", "a"}},
		{SortRating, []string{"a", "c", "b"}},
		{SortReviews, []string{"b", "c", "a"}},
		{SortPriceAsc, []string{"b", "c", "a"}},
		{SortPriceDesc, []string{"a", "c", "b"}},
		{SortDiscount, []string{"b", "c", "a"}},
		{"unknown", []string{"a", "b", "c"}},
		{"", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := names(SortProducts(products, tt.key))
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("SortProducts(%q) = %v, want %v", tt.key, got, tt.want)
				}
			}
		})
	}
}

func TestSortIsIdempotent(t *testing.T) {
	products := []Product{
		priced("a", 30, 0),
		priced("b", 10, 0),
		priced("c", 20, 0),
	}

	once := SortProducts(products, SortPriceAsc)
	twice := SortProducts(once, SortPriceAsc)

	for i := range once {
		if once[i].Name != twice[i].Name {
			t.Fatalf("re-sorting changed order: %v vs %v", names(once), names(twice))
		}
	}
}

func TestSortIsStableOnTies(t *testing.T) {
	products := []Product{
		priced("first", 10, 0),
		priced("second", 10, 0),
		priced("third", 10, 0),
	}

	got := names(SortProducts(products, SortPriceAsc))
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("equal keys reordered: %v", got)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	products := []Product{
		priced("mid", 19.99, 0),
		priced("low", 5.00, 0),
	}

	SortProducts(products, SortPriceAsc)
	if products[0].Name != "mid" {
		t.Fatal("SortProducts() mutated its input slice")
	}
}
