package items_test

import (
	"math"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/shared"
)

func mustItem(t *testing.T, id int, name string) *items.Item {
	t.Helper()
	item, err := items.NewItem(id, name, 1, nil, nil, nil)
	require.NoError(t, err)
	return item
}

func TestNewItem_Validation(t *testing.T) {
	_, err := items.NewItem(1, "", 10, nil, nil, nil)
	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)

	_, err = items.NewItem(-1, "Logs", 10, nil, nil, nil)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "id", validationErr.Field)

	_, err = items.NewItem(1, "Logs", -10, nil, nil, nil)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "value", validationErr.Field)
}

func TestItem_OptionalFields(t *testing.T) {
	item, err := items.NewItem(561, "Nature rune", 180, lo.ToPtr(108), lo.ToPtr(72), nil)
	require.NoError(t, err)

	highAlch, ok := item.HighAlch()
	assert.True(t, ok)
	assert.Equal(t, 108, highAlch)

	lowAlch, ok := item.LowAlch()
	assert.True(t, ok)
	assert.Equal(t, 72, lowAlch)

	_, ok = item.Limit()
	assert.False(t, ok)
}

func TestPrice_AbsentIsNotZero(t *testing.T) {
	zero := items.PriceAt(10, 0)
	absent := items.Unpriced(10)

	value, ok := zero.Value()
	assert.True(t, ok)
	assert.Equal(t, 0, value)

	_, ok = absent.Value()
	assert.False(t, ok)
	assert.False(t, zero.Equal(absent))
}

func TestOffer_WithDoseReturnsCopy(t *testing.T) {
	offer := items.NewOffer(mustItem(t, 1, "Prayer potion(3)"), items.PriceAt(0, 10), items.PriceAt(0, 5))

	annotated := offer.WithDose(3)

	_, ok := offer.Dose()
	assert.False(t, ok, "original offer must not be annotated")
	dose, ok := annotated.Dose()
	assert.True(t, ok)
	assert.Equal(t, 3, dose)
	assert.True(t, offer.Highest().Equal(annotated.Highest()))
}

func TestTimeseries_DerivedViews(t *testing.T) {
	item := mustItem(t, 4151, "Abyssal whip")
	highest := []items.Price{
		items.NewPrice(300, lo.ToPtr(1000), lo.ToPtr(5)),
		items.NewPrice(600, nil, nil),
		items.NewPrice(900, lo.ToPtr(1100), lo.ToPtr(7)),
	}
	lowest := []items.Price{
		items.NewPrice(300, lo.ToPtr(900), lo.ToPtr(3)),
		items.NewPrice(600, lo.ToPtr(950), lo.ToPtr(1)),
		items.NewPrice(900, lo.ToPtr(1000), lo.ToPtr(2)),
	}

	ts, err := items.NewTimeseries(item, highest, lowest, items.Timestep5m)
	require.NoError(t, err)

	start, end, err := ts.TimeRange()
	require.NoError(t, err)
	assert.Equal(t, int64(300), start)
	assert.Equal(t, int64(900), end)
	assert.Equal(t, 12, ts.TotalVolume())
	assert.Len(t, ts.AsOffers(), 3)

	latest, err := ts.LatestOffer()
	require.NoError(t, err)
	high, _ := latest.Highest().Value()
	assert.Equal(t, 1100, high)

	margins := ts.Margins()
	assert.Equal(t, 100.0, margins[0])
	assert.True(t, math.IsNaN(margins[1]))
	assert.Equal(t, 100.0, margins[2])
}

func TestTimeseries_Errors(t *testing.T) {
	item := mustItem(t, 1, "Logs")

	_, err := items.NewTimeseries(item, []items.Price{items.PriceAt(0, 1)}, nil, items.Timestep1h)
	assert.ErrorIs(t, err, items.ErrMismatchedSeries)

	empty, err := items.NewTimeseries(item, nil, nil, items.Timestep1h)
	require.NoError(t, err)
	_, err = empty.LatestOffer()
	assert.ErrorIs(t, err, items.ErrEmptyTimeseries)
	_, _, err = empty.TimeRange()
	assert.ErrorIs(t, err, items.ErrEmptyTimeseries)
}

func TestParseTimestep(t *testing.T) {
	ts, err := items.ParseTimestep("6h")
	require.NoError(t, err)
	assert.Equal(t, items.Timestep6h, ts)

	_, err = items.ParseTimestep("2m")
	var timestepErr *items.ErrInvalidTimestep
	assert.ErrorAs(t, err, &timestepErr)
}

func TestCatalog_Lookups(t *testing.T) {
	catalog := items.NewCatalog([]*items.Item{
		mustItem(t, 1511, "Logs"),
		mustItem(t, 1521, "Oak logs"),
		mustItem(t, 4151, "Abyssal whip"),
	})

	assert.Equal(t, []string{"Logs", "Oak logs", "Abyssal whip"}, catalog.Names())

	item, err := catalog.ByID(4151)
	require.NoError(t, err)
	assert.Equal(t, "Abyssal whip", item.Name())

	_, err = catalog.ByName("Dragon claws")
	var notFound *items.ErrItemNotInCatalog
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Dragon claws", notFound.Name)

	found := catalog.ByNames("Oak logs", "Logs", "Missing")
	assert.Len(t, found, 2)
	assert.Equal(t, "Logs", found[0].Name())
}

func TestCatalog_SearchFor(t *testing.T) {
	catalog := items.NewCatalog([]*items.Item{
		mustItem(t, 4151, "Abyssal whip"),
		mustItem(t, 4587, "Dragon scimitar"),
	})

	matches := catalog.SearchFor("abyssal whip", items.DefaultSearchThreshold)
	require.Len(t, matches, 1)
	assert.Equal(t, 4151, matches[0].ID())

	matches = catalog.SearchFor("abysal whip", items.DefaultSearchThreshold)
	assert.Len(t, matches, 1, "a single typo should still match")

	assert.Empty(t, catalog.SearchFor("rune platebody", items.DefaultSearchThreshold))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 100, items.Similarity("logs", "logs"))
	assert.Equal(t, 100, items.Similarity("", ""))
	assert.Equal(t, 0, items.Similarity("abc", "xyz"))
	assert.Equal(t, 75, items.Similarity("logs", "lags"))
}

func TestEquipmentSet(t *testing.T) {
	set, err := items.LoadEquipmentSet("Dharok's")
	require.NoError(t, err)

	assert.Equal(t, "Dharok's armour set", set.Set())
	assert.Equal(t, []string{"Dharok's helm", "Dharok's platebody", "Dharok's platelegs", "Dharok's greataxe"}, set.Pieces())
	assert.Equal(t, "Dharok's greataxe 0", set.Degraded()[3])

	found, slot, ok := items.FindSetByPiece("Verac's brassard")
	require.True(t, ok)
	assert.Equal(t, "Verac's", found.Name())
	assert.Equal(t, items.SlotBody, slot)

	_, err = items.LoadEquipmentSet("Akrisae's")
	var unknown *items.ErrUnknownEquipmentSet
	require.ErrorAs(t, err, &unknown)
	assert.Len(t, unknown.Choices, 6)
}

func TestRepairedName(t *testing.T) {
	name, ok := items.RepairedName("Dharok's helm 0")
	assert.True(t, ok)
	assert.Equal(t, "Dharok's helm", name)

	_, ok = items.RepairedName("Dharok's helm")
	assert.False(t, ok)
}
