package catalog

import (
	"sync"
	"time"
)

// Query is one grid request: search text, filter snapshot, and pagination
// cursor. The zero value asks for the first default-size page of everything.
type Query struct {
	Search   string
	Filters  FilterState
	Page     int
	PageSize int
}

// Stats summarizes a loaded catalog.
type Stats struct {
	TotalProducts int            `json:"total_products"`
	Categories    map[string]int `json:"categories"`
	LoadedAt      time.Time      `json:"loaded_at"`
}

// Engine runs the query pipeline over one region's product list. The fuzzy
// index is rebuilt when the list is replaced, never per query. Queries and
// reloads may race, so the list and index swap under a lock; the pipeline
// itself runs lock-free on the snapshot it took.
type Engine struct {
	mu       sync.RWMutex
	products []Product
	matcher  *Matcher
	loadedAt time.Time
}

// NewEngine creates an engine over an empty catalog.
func NewEngine() *Engine {
	e := &Engine{}
	e.SetProducts(nil)
	return e
}

// SetProducts replaces the product list and rebuilds the fuzzy index.
func (e *Engine) SetProducts(products []Product) {
	matcher := NewMatcher(products)
	e.mu.Lock()
	e.products = products
	e.matcher = matcher
	e.loadedAt = time.Now().UTC()
	e.mu.Unlock()
}

// Products returns a copy of the full product list in ingestion order.
func (e *Engine) Products() []Product {
	e.mu.RLock()
	defer e.mu.RUnlock()
	result := make([]Product, len(e.products))
	copy(result, e.products)
	return result
}

// Query runs search, filter, sort, and paginate as one synchronous pass and
// returns the resulting page. Every stage produces a new derived list; the
// engine's product list is never mutated.
func (e *Engine) Query(q Query) Result {
	e.mu.RLock()
	matcher := e.matcher
	e.mu.RUnlock()

	result := matcher.Search(q.Search)
	result = Filter(result, q.Filters)
	result = SortProducts(result, q.Filters.SortBy)
	return Paginate(result, q.Page, q.PageSize)
}

// Stats returns totals and per-category counts for the loaded catalog.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	counts := make(map[string]int)
	for i := range e.products {
		counts[e.products[i].Category]++
	}
	return Stats{
		TotalProducts: len(e.products),
		Categories:    counts,
		LoadedAt:      e.loadedAt,
	}
}
