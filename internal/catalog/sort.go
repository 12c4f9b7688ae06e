package catalog

import "sort"

// Sort keys accepted by SortProducts. An unknown key leaves the input order
// unchanged.
const (
	SortNewest    = "newest"
	SortRating    = "rating"
	SortReviews   = "reviews"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortDiscount  = "discount"
)

// SortProducts returns a new slice ordered by the given sort key. Sorting is
// stable: ties retain their relative input order. Missing numeric fields
// compare as zero; a zero LastUpdated sorts as oldest.
func SortProducts(products []Product, key string) []Product {
	result := make([]Product, len(products))
	copy(result, products)

	var less func(a, b int) bool
	switch key {
	case SortNewest:
		less = func(a, b int) bool { return result[a].LastUpdated.After(result[b].LastUpdated) }
	case SortRating:
		less = func(a, b int) bool { return result[a].Rating > result[b].Rating }
	case SortReviews:
		less = func(a, b int) bool { return result[a].RatingCount > result[b].RatingCount }
	case SortPriceAsc:
		less = func(a, b int) bool { return result[a].FinalPrice < result[b].FinalPrice }
	case SortPriceDesc:
		less = func(a, b int) bool { return result[a].FinalPrice > result[b].FinalPrice }
	case SortDiscount:
		less = func(a, b int) bool { return result[a].FinalSavingsPercent > result[b].FinalSavingsPercent }
	default:
		return result
	}

	sort.SliceStable(result, less)
	return result
}
