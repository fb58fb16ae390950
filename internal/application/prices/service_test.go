package prices_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/prices"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/ports"
	"github.com/Lee-Tyrer/grandexchange-go/test/helpers"
)

func newFeed() *helpers.MockPriceFeedClient {
	feed := helpers.NewMockPriceFeedClient()
	feed.AddOffer("Abyssal whip", 1_490_000, 1_500_000)
	feed.AddOffer("Feather", 2, 3)
	feed.AddItem("Dragon claws", nil)
	return feed
}

func TestService_OffersPreserveRequestOrder(t *testing.T) {
	// Arrange
	feed := newFeed()
	svc := prices.NewService(feed, 0, 0)

	// Act
	offers, err := svc.Offers(context.Background(), "Feather", "Abyssal whip")

	// Assert
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "Feather", offers[0].Name())
	assert.Equal(t, "Abyssal whip", offers[1].Name())

	low, ok := offers[1].Lowest().Value()
	require.True(t, ok)
	assert.Equal(t, 1_490_000, low)
	assert.Equal(t, helpers.FixtureTimestamp, offers[1].Highest().Timestamp())
}

func TestService_ItemWithoutTradesIsUnpriced(t *testing.T) {
	svc := prices.NewService(newFeed(), 0, 0)

	offers, err := svc.Offers(context.Background(), "Dragon claws")

	require.NoError(t, err)
	assert.False(t, offers[0].Highest().IsAvailable())
	assert.False(t, offers[0].Lowest().IsAvailable())
}

func TestService_UnknownNameFails(t *testing.T) {
	svc := prices.NewService(newFeed(), 0, 0)

	_, err := svc.Offers(context.Background(), "Abyssal whp")

	var notFound *items.ErrItemNotInCatalog
	assert.ErrorAs(t, err, &notFound)
}

func TestService_CachesCatalogAndLatest(t *testing.T) {
	feed := newFeed()
	svc := prices.NewService(feed, 0, 0)
	ctx := context.Background()

	_, err := svc.Offers(ctx, "Feather", "Abyssal whip")
	require.NoError(t, err)
	_, err = svc.Offers(ctx, "Abyssal whip", "Feather")
	require.NoError(t, err)

	assert.Equal(t, 1, feed.MappingCalls())
	assert.Len(t, feed.LatestCalls(), 1)

	svc.Invalidate()
	_, err = svc.Offers(ctx, "Feather")
	require.NoError(t, err)

	assert.Equal(t, 1, feed.MappingCalls())
	assert.Len(t, feed.LatestCalls(), 2)
}

func TestService_AllOffersSkipsItemsWithoutData(t *testing.T) {
	svc := prices.NewService(newFeed(), 0, 0)

	offers, err := svc.AllOffers(context.Background())

	require.NoError(t, err)
	names := lo.Map(offers, func(o items.Offer, _ int) string { return o.Name() })
	assert.ElementsMatch(t, []string{"Abyssal whip", "Feather"}, names)
}

func TestService_Timeseries(t *testing.T) {
	feed := newFeed()
	feed.AddTimeseriesPoint("Feather", ports.TimeseriesPointData{
		Timestamp: 100, AvgHighPrice: lo.ToPtr(4), AvgLowPrice: lo.ToPtr(2),
		HighPriceVolume: lo.ToPtr(1000), LowPriceVolume: lo.ToPtr(900),
	})
	feed.AddTimeseriesPoint("Feather", ports.TimeseriesPointData{
		Timestamp: 400, AvgLowPrice: lo.ToPtr(3), LowPriceVolume: lo.ToPtr(50),
	})
	svc := prices.NewService(feed, 0, 0)

	ts, err := svc.Timeseries(context.Background(), "Feather", items.Timestep5m)

	require.NoError(t, err)
	assert.Equal(t, 2, ts.Len())
	assert.Equal(t, items.Timestep5m, ts.Timestep())
	assert.False(t, ts.Highest()[1].IsAvailable())
	assert.Equal(t, []int{helpers.FixtureID("Feather")}, feed.TimeseriesCalls())
}

func TestService_Search(t *testing.T) {
	svc := prices.NewService(newFeed(), 0, 0)

	found, err := svc.Search(context.Background(), "abysal whip", items.DefaultSearchThreshold)

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Abyssal whip", found[0].Name())
}

func TestService_PropagatesFeedErrors(t *testing.T) {
	feed := newFeed()
	feed.SetError("feed down")
	svc := prices.NewService(feed, 0, 0)

	_, err := svc.Catalog(context.Background())

	assert.EqualError(t, err, "feed down")
}
