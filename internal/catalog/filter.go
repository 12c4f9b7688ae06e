package catalog

// Default price range bounds. The default range is unrestrictive: every
// non-negative price passes.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 9999
)

// SpecialOffers holds the independent special-offer filter flags. Each
// enabled flag narrows results to products exhibiting that offer type.
type SpecialOffers struct {
	Coupon         bool `json:"coupon"`
	PromoCode      bool `json:"promoCode"`
	LightningDeals bool `json:"lightningDeals"`
	ExtraOffer     bool `json:"extraOffer"`
}

// FilterState is a user-editable filter specification. It is treated as an
// immutable snapshot: pipeline stages read it, they never modify it.
type FilterState struct {
	PriceRange    [2]float64    `json:"priceRange"`
	MinDiscount   int           `json:"minDiscount"`
	SortBy        string        `json:"sortBy"`
	Categories    []string      `json:"categories"`
	SpecialOffers SpecialOffers `json:"specialOffers"`
}

// DefaultFilterState returns the unrestrictive filter: full price range, no
// minimum discount, no category restriction, no offer flags, newest first.
func DefaultFilterState() FilterState {
	return FilterState{
		PriceRange: [2]float64{DefaultMinPrice, DefaultMaxPrice},
		SortBy:     SortNewest,
	}
}

// Normalized enforces the min <= max price invariant and clamps the discount
// threshold to 0-100.
func (f FilterState) Normalized() FilterState {
	if f.PriceRange[0] > f.PriceRange[1] {
		f.PriceRange[0], f.PriceRange[1] = f.PriceRange[1], f.PriceRange[0]
	}
	if f.MinDiscount < 0 {
		f.MinDiscount = 0
	}
	if f.MinDiscount > 100 {
		f.MinDiscount = 100
	}
	return f
}

// Filter returns the products satisfying every active predicate in f.
// Predicate groups combine with AND; category membership is OR within the
// set. The input slice is never modified.
func Filter(products []Product, f FilterState) []Product {
	f = f.Normalized()

	var categories map[string]struct{}
	if len(f.Categories) > 0 {
		categories = make(map[string]struct{}, len(f.Categories))
		for _, c := range f.Categories {
			categories[c] = struct{}{}
		}
	}

	result := make([]Product, 0, len(products))
	for i := range products {
		if matches(products[i], f, categories) {
			result = append(result, products[i])
		}
	}
	return result
}

func matches(p Product, f FilterState, categories map[string]struct{}) bool {
	if p.FinalPrice < f.PriceRange[0] || p.FinalPrice > f.PriceRange[1] {
		return false
	}
	if f.MinDiscount > 0 && p.FinalSavingsPercent < float64(f.MinDiscount) {
		return false
	}
	if categories != nil {
		if _, ok := categories[p.Category]; !ok {
			return false
		}
	}
	if f.SpecialOffers.Coupon && !p.HasCoupon() {
		return false
	}
	if f.SpecialOffers.PromoCode && !p.HasPromoCode() {
		return false
	}
	if f.SpecialOffers.LightningDeals && !p.IsLightningDeal() {
		return false
	}
	if f.SpecialOffers.ExtraOffer && !p.HasExtraOffer() {
		return false
	}
	return true
}
