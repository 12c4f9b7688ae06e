package presets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ohcanadadeals/dealdeck/internal/catalog"
	"github.com/ohcanadadeals/dealdeck/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock()
	svc := NewService(newTestRepo(t), zap.NewNop())
	svc.now = clock.Now
	return svc, clock
}

func TestServiceCreateAndList(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Kitchen deals", "", catalog.DefaultFilterState())
	require.NoError(t, err)
	require.Equal(t, clock.Now().UnixMilli(), created.ID)
	require.Equal(t, "Kitchen deals", created.Label)
	require.False(t, created.IsFavorite)

	listed, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, created, listed[0])
}

func TestServiceCreateRejectsEmptyLabel(t *testing.T) {
	svc, _ := newTestService(t)

	for _, label := range []string{"", "   ", "\t"} {
		_, err := svc.Create(context.Background(), label, "", catalog.DefaultFilterState())
		require.ErrorIs(t, err, ErrEmptyLabel)
	}
}

func TestServiceCreateBumpsCollidingIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// The clock never advances, so every save lands on the same
	// millisecond and the ID must be bumped to stay unique.
	a, err := svc.Create(ctx, "first", "", catalog.DefaultFilterState())
	require.NoError(t, err)
	b, err := svc.Create(ctx, "second", "", catalog.DefaultFilterState())
	require.NoError(t, err)
	c, err := svc.Create(ctx, "third", "", catalog.DefaultFilterState())
	require.NoError(t, err)

	require.Equal(t, a.ID+1, b.ID)
	require.Equal(t, b.ID+1, c.ID)
}

func TestServiceDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "doomed", "", catalog.DefaultFilterState())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	listed, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestServiceDeleteMissing(t *testing.T) {
	svc, _ := newTestService(t)
	require.ErrorIs(t, svc.Delete(context.Background(), 404), ErrNotFound)
}

func TestServiceToggleFavorite(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "flip me", "", catalog.DefaultFilterState())
	require.NoError(t, err)

	on, err := svc.ToggleFavorite(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, on.IsFavorite)

	off, err := svc.ToggleFavorite(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, off.IsFavorite)
}

func TestServiceToggleFavoriteMissing(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ToggleFavorite(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServiceListFavoritesFirst(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "plain one", "", catalog.DefaultFilterState())
	require.NoError(t, err)
	clock.Advance(time.Second)
	fav, err := svc.Create(ctx, "starred", "", catalog.DefaultFilterState())
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = svc.Create(ctx, "plain two", "", catalog.DefaultFilterState())
	require.NoError(t, err)

	_, err = svc.ToggleFavorite(ctx, fav.ID)
	require.NoError(t, err)

	listed, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.Equal(t, "starred", listed[0].Label)
	require.Equal(t, "plain one", listed[1].Label)
	require.Equal(t, "plain two", listed[2].Label)
}

func TestServiceListQueryMatchesLabelAndDescription(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Kitchen steals", "pots and pans", catalog.DefaultFilterState())
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = svc.Create(ctx, "Audio", "headphones under $100", catalog.DefaultFilterState())
	require.NoError(t, err)

	byLabel, err := svc.List(ctx, "kitchen")
	require.NoError(t, err)
	require.Len(t, byLabel, 1)
	require.Equal(t, "Kitchen steals", byLabel[0].Label)

	byDescription, err := svc.List(ctx, "HEADPHONES")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	require.Equal(t, "Audio", byDescription[0].Label)

	none, err := svc.List(ctx, "garden")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSummary(t *testing.T) {
	require.Empty(t, Summary(catalog.DefaultFilterState()))

	f := catalog.DefaultFilterState()
	f.PriceRange = [2]float64{10, 50}
	f.MinDiscount = 30
	require.Equal(t, []string{"$10-$50", "30%+ off"}, Summary(f))

	f.Categories = []string{"Electronics", "Kitchen"}
	f.SpecialOffers.Coupon = true
	got := Summary(f)
	require.Len(t, got, 3)
	require.Equal(t, "+3 more", got[2])
}
