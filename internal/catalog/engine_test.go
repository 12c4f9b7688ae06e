package catalog

import (
	"testing"
	"time"
)

func testCatalog() []Product {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{Name: "Wireless Earbuds Pro", FinalPrice: 49.99, FinalSavingsPercent: 30, Category: "Electronics", ClipCouponSavings: 5, LastUpdated: base.Add(72 * time.Hour)},
		{Name: "Cast Iron Skillet", FinalPrice: 24.99, FinalSavingsPercent: 10, Category: "Kitchen", LastUpdated: base.Add(24 * time.Hour)},
		{Name: "Wireless Charger", FinalPrice: 15.99, FinalSavingsPercent: 50, Category: "Electronics", PromoCode: "CHARGE10", LastUpdated: base},
		{Name: "Bamboo Cutting Board", FinalPrice: 12.49, FinalSavingsPercent: 0, Category: "Kitchen", LastUpdated: base.Add(48 * time.Hour)},
	}
}

func TestEngineQueryFullPipeline(t *testing.T) {
	e := NewEngine()
	e.SetProducts(testCatalog())

	f := DefaultFilterState()
	f.Categories = []string{"Electronics"}
	f.SortBy = SortPriceAsc

	r := e.Query(Query{Search: "wireless", Filters: f, Page: 1, PageSize: 12})
	if r.TotalItems != 2 {
		t.Fatalf("TotalItems = %d, want 2", r.TotalItems)
	}
	if r.Items[0].Name != "Wireless Charger" || r.Items[1].Name != "Wireless Earbuds Pro" {
		t.Fatalf("pipeline order = %v", names(r.Items))
	}
}

func TestEngineQueryDoesNotMutateCatalog(t *testing.T) {
	e := NewEngine()
	e.SetProducts(testCatalog())
	before := names(e.Products())

	f := DefaultFilterState()
	f.SortBy = SortPriceDesc
	e.Query(Query{Filters: f, Page: 1, PageSize: 12})

	after := names(e.Products())
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Query() reordered the catalog: %v -> %v", before, after)
		}
	}
}

func TestEngineZeroQueryReturnsFirstDefaultPage(t *testing.T) {
	e := NewEngine()
	e.SetProducts(makeProducts(30))

	r := e.Query(Query{})
	if r.Page != 1 || r.PageSize != DefaultPageSize {
		t.Fatalf("zero query: page %d size %d, want 1/%d", r.Page, r.PageSize, DefaultPageSize)
	}
	if len(r.Items) != DefaultPageSize {
		t.Fatalf("zero query returned %d items", len(r.Items))
	}
}

func TestEngineEmptyCatalog(t *testing.T) {
	e := NewEngine()

	r := e.Query(Query{Search: "anything here"})
	if r.TotalItems != 0 || r.TotalPages != 1 {
		t.Fatalf("empty catalog: %d items, %d pages", r.TotalItems, r.TotalPages)
	}

	s := e.Stats()
	if s.TotalProducts != 0 {
		t.Fatalf("Stats().TotalProducts = %d, want 0", s.TotalProducts)
	}
}

func TestEngineSetProductsRebuildsIndex(t *testing.T) {
	e := NewEngine()
	e.SetProducts(testCatalog())

	if got := e.Query(Query{Search: "skillet"}); got.TotalItems != 1 {
		t.Fatalf("before reload: %d matches", got.TotalItems)
	}

	e.SetProducts(named("Standing Desk", "Desk Lamp"))
	if got := e.Query(Query{Search: "skillet"}); got.TotalItems != 0 {
		t.Fatalf("stale index: skillet still matches after reload")
	}
	if got := e.Query(Query{Search: "desk"}); got.TotalItems != 2 {
		t.Fatalf("new index: desk matches %d, want 2", got.TotalItems)
	}
}

func TestEngineStats(t *testing.T) {
	e := NewEngine()
	e.SetProducts(testCatalog())

	s := e.Stats()
	if s.TotalProducts != 4 {
		t.Fatalf("TotalProducts = %d, want 4", s.TotalProducts)
	}
	if s.Categories["Electronics"] != 2 || s.Categories["Kitchen"] != 2 {
		t.Fatalf("Categories = %v", s.Categories)
	}
	if s.LoadedAt.IsZero() {
		t.Fatal("LoadedAt is zero")
	}
}
