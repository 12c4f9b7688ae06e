package presets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ohcanadadeals/dealdeck/internal/catalog"
	"github.com/ohcanadadeals/dealdeck/internal/testutil"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(context.Background(), testutil.NewStore(t))
	require.NoError(t, err)
	return repo
}

func TestRepositoryLoadEmpty(t *testing.T) {
	repo := newTestRepo(t)

	filters, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, filters)
	require.Empty(t, filters)
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	state := catalog.FilterState{
		PriceRange:  [2]float64{9.99, 149.50},
		MinDiscount: 25,
		SortBy:      catalog.SortDiscount,
		Categories:  []string{"Electronics", "Kitchen"},
		SpecialOffers: catalog.SpecialOffers{
			Coupon:    true,
			PromoCode: true,
		},
	}
	saved := []SavedFilter{{
		ID:          1718000000000,
		Label:       "Big electronics discounts",
		Description: "25% or more off",
		Value:       state,
		CreatedAt:   time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC),
		IsFavorite:  true,
	}}

	require.NoError(t, repo.Save(ctx, saved))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)

	// The tuple-typed price range and every offer flag must survive the
	// round trip exactly.
	require.Equal(t, [2]float64{9.99, 149.50}, loaded[0].Value.PriceRange)
	require.True(t, loaded[0].Value.SpecialOffers.Coupon)
	require.True(t, loaded[0].Value.SpecialOffers.PromoCode)
	require.False(t, loaded[0].Value.SpecialOffers.LightningDeals)
}

func TestRepositorySaveReplacesList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []SavedFilter{{ID: 1, Label: "first"}}))
	require.NoError(t, repo.Save(ctx, []SavedFilter{{ID: 2, Label: "second"}}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "second", loaded[0].Label)
}

func TestRepositoryMalformedDataDiscardedWholesale(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []SavedFilter{{ID: 1, Label: "valid"}}))

	// Corrupt the stored document behind the repository's back.
	_, err := repo.db.ExecContext(ctx,
		`UPDATE preset_documents SET value = '{"not": "a list"' WHERE key = ?`, storageKey)
	require.NoError(t, err)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded, "malformed data must be discarded wholesale, not partially recovered")
}
