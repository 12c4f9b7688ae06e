package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ohcanadadeals/dealdeck/internal/catalog"
)

// NewProduct returns a Product with sensible defaults, suitable for test
// fixtures. Override individual fields via options as needed.
func NewProduct(opts ...func(*catalog.Product)) catalog.Product {
	id := uuid.New().String()[:10]
	p := catalog.Product{
		Name:         "Test Product " + id,
		ASIN:         "B0" + id[:8],
		ListPrice:    49.99,
		CurrentPrice: 39.99,
		FinalPrice:   39.99,
		Hyperlink:    fmt.Sprintf("https://www.amazon.ca/dp/B0%s", id[:8]),
		ImageLink:    "https://images.example.com/" + id + ".jpg",
		Rating:       4.2,
		RatingCount:  120,
		Category:     "Electronics",
		LastUpdated:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithName sets the product name.
func WithName(name string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Name = name }
}

// WithPrice sets the final price (and current price to match).
func WithPrice(price float64) func(*catalog.Product) {
	return func(p *catalog.Product) {
		p.CurrentPrice = price
		p.FinalPrice = price
	}
}

// WithDiscount sets the final savings percent.
func WithDiscount(percent float64) func(*catalog.Product) {
	return func(p *catalog.Product) { p.FinalSavingsPercent = percent }
}

// WithCategory sets the category label.
func WithCategory(label string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Category = label }
}

// WithCoupon gives the product a clippable coupon of the given amount.
func WithCoupon(savings float64) func(*catalog.Product) {
	return func(p *catalog.Product) { p.ClipCouponSavings = savings }
}

// WithPromoCode sets a promo code on the product.
func WithPromoCode(code string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.PromoCode = code }
}

// WithExtraOffer sets the extra offer text.
func WithExtraOffer(offer string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.ExtraOffer = offer }
}

// WithRating sets the star rating and review count.
func WithRating(rating float64, count int) func(*catalog.Product) {
	return func(p *catalog.Product) {
		p.Rating = rating
		p.RatingCount = count
	}
}

// WithLastUpdated sets the freshness timestamp.
func WithLastUpdated(t time.Time) func(*catalog.Product) {
	return func(p *catalog.Product) { p.LastUpdated = t }
}

// WithHyperlink sets the outbound marketplace link.
func WithHyperlink(link string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Hyperlink = link }
}
