package presets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ohcanadadeals/dealdeck/internal/catalog"
)

// Service applies preset business rules on top of a Repository.
type Service struct {
	repo   Repository
	logger *zap.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewService creates a preset service backed by repo.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the stored presets, favorites first. A non-empty query
// restricts the list to presets whose label or description contains the
// query, case-insensitively.
func (s *Service) List(ctx context.Context, query string) ([]SavedFilter, error) {
	filters, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		matched := make([]SavedFilter, 0, len(filters))
		for _, f := range filters {
			if strings.Contains(strings.ToLower(f.Label), query) ||
				strings.Contains(strings.ToLower(f.Description), query) {
				matched = append(matched, f)
			}
		}
		filters = matched
	}

	// Stable partition: favorites ahead of the rest, insertion order kept
	// within each group.
	ordered := make([]SavedFilter, 0, len(filters))
	for _, f := range filters {
		if f.IsFavorite {
			ordered = append(ordered, f)
		}
	}
	for _, f := range filters {
		if !f.IsFavorite {
			ordered = append(ordered, f)
		}
	}
	return ordered, nil
}

// Create stores a new preset snapshotting value and returns it. The ID is
// the creation time in unix milliseconds, bumped past any existing ID so
// two saves within the same millisecond stay distinct.
func (s *Service) Create(ctx context.Context, label, description string, value catalog.FilterState) (SavedFilter, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return SavedFilter{}, ErrEmptyLabel
	}

	filters, err := s.repo.Load(ctx)
	if err != nil {
		return SavedFilter{}, err
	}

	now := s.now().UTC()
	id := now.UnixMilli()
	for _, f := range filters {
		if f.ID >= id {
			id = f.ID + 1
		}
	}

	preset := SavedFilter{
		ID:          id,
		Label:       label,
		Description: strings.TrimSpace(description),
		Value:       value,
		CreatedAt:   now,
	}
	filters = append(filters, preset)
	if err := s.repo.Save(ctx, filters); err != nil {
		return SavedFilter{}, err
	}

	s.logger.Info("preset created",
		zap.Int64("id", preset.ID),
		zap.String("label", preset.Label))
	return preset, nil
}

// Delete removes the preset with the given ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	filters, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	kept := filters[:0]
	found := false
	for _, f := range filters {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return ErrNotFound
	}
	if err := s.repo.Save(ctx, kept); err != nil {
		return err
	}

	s.logger.Info("preset deleted", zap.Int64("id", id))
	return nil
}

// ToggleFavorite flips the favorite flag on the preset with the given ID
// and returns the updated preset.
func (s *Service) ToggleFavorite(ctx context.Context, id int64) (SavedFilter, error) {
	filters, err := s.repo.Load(ctx)
	if err != nil {
		return SavedFilter{}, err
	}

	for i := range filters {
		if filters[i].ID != id {
			continue
		}
		filters[i].IsFavorite = !filters[i].IsFavorite
		if err := s.repo.Save(ctx, filters); err != nil {
			return SavedFilter{}, err
		}
		return filters[i], nil
	}
	return SavedFilter{}, ErrNotFound
}

// Summary renders a FilterState as at most three short display chips,
// with a "+N more" tail when more apply.
func Summary(f catalog.FilterState) []string {
	f = f.Normalized()

	var chips []string
	if f.PriceRange[0] != catalog.DefaultMinPrice || f.PriceRange[1] != catalog.DefaultMaxPrice {
		chips = append(chips, fmt.Sprintf("$%g-$%g", f.PriceRange[0], f.PriceRange[1]))
	}
	if f.MinDiscount > 0 {
		chips = append(chips, fmt.Sprintf("%d%%+ off", f.MinDiscount))
	}
	chips = append(chips, f.Categories...)
	if f.SpecialOffers.Coupon {
		chips = append(chips, "Coupon")
	}
	if f.SpecialOffers.PromoCode {
		chips = append(chips, "Promo code")
	}
	if f.SpecialOffers.LightningDeals {
		chips = append(chips, "Lightning deals")
	}
	if f.SpecialOffers.ExtraOffer {
		chips = append(chips, "Extra offer")
	}

	if len(chips) > 3 {
		extra := len(chips) - 2
		chips = append(chips[:2], fmt.Sprintf("+%d more", extra))
	}
	return chips
}
