// Package catalog implements the deal catalog query engine: fuzzy search,
// predicate filtering, comparator sorting, and pagination over product
// listings ingested from static data files.
package catalog

import "time"

// Product is a single affiliate deal listing. Products are immutable once
// ingested; every pipeline stage that transforms a product list returns a
// new slice and leaves its input untouched.
type Product struct {
	Name                     string  `json:"name"`
	ASIN                     string  `json:"asin"`
	ListPrice                float64 `json:"list_price"`
	CurrentPrice             float64 `json:"current_price"`
	FinalPrice               float64 `json:"final_price"`
	FinalSavingsPercent      float64 `json:"final_savings_percent"`
	ClipCouponSavings        float64 `json:"clip_coupon_savings"`
	ClipCouponPercentSavings float64 `json:"clip_coupon_percent_savings"`
	PromoCode                string  `json:"promo_code"`
	PromoCodePercentOff      float64 `json:"promo_code_percent_off"`
	CheckoutDiscountAmount   float64 `json:"checkout_discount_amount"`
	CheckoutDiscountPercent  float64 `json:"checkout_discount_percent"`
	ExtraOffer               string  `json:"extra_offer"`
	Hyperlink                string  `json:"hyperlink"`
	ImageLink                string  `json:"image_link"`
	Rating                   float64 `json:"rating"`
	RatingCount              int     `json:"rating_count"`

	// Category is derived from the source file name during ingestion and
	// never changes afterwards.
	Category string `json:"category"`

	// LastUpdated is the source file's freshness timestamp, stamped onto
	// every product from that file. A zero value sorts as oldest.
	LastUpdated time.Time `json:"last_updated_time"`
}

// HasCoupon reports whether the product carries a clippable coupon offer.
func (p Product) HasCoupon() bool {
	return p.ClipCouponSavings > 0 || p.ClipCouponPercentSavings > 0
}

// HasPromoCode reports whether the product carries a promo code offer.
func (p Product) HasPromoCode() bool {
	return p.PromoCode != ""
}

// HasExtraOffer reports whether the product carries a supplementary offer.
func (p Product) HasExtraOffer() bool {
	return p.ExtraOffer != ""
}

// IsLightningDeal reports whether the product is a lightning deal. No source
// file emits lightning deal data yet, so this currently matches nothing; the
// filter flag is carried for forward compatibility with the data feed.
func (p Product) IsLightningDeal() bool {
	return false
}

// CategoryDescriptor is display metadata for a general product category.
type CategoryDescriptor struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}
