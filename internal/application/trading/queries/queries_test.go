package queries_test

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/application/prices"
	"github.com/Lee-Tyrer/grandexchange-go/internal/application/trading/queries"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
	"github.com/Lee-Tyrer/grandexchange-go/test/helpers"
)

func newSource(configure func(feed *helpers.MockPriceFeedClient)) *prices.Service {
	feed := helpers.NewMockPriceFeedClient()
	configure(feed)
	return prices.NewService(feed, 0, 0)
}

func handle[T any](t *testing.T, handler mediator.RequestHandler, request mediator.Request) T {
	t.Helper()
	response, err := handler.Handle(context.Background(), request)
	require.NoError(t, err)
	typed, ok := response.(T)
	require.True(t, ok, "unexpected response type %T", response)
	return typed
}

func TestFlipHandler(t *testing.T) {
	source := newSource(func(feed *helpers.MockPriceFeedClient) {
		feed.AddOffer("Abyssal whip", 100, 1000)
	})

	response := handle[*queries.TransactionResponse](t, queries.NewFlipHandler(source),
		&queries.FlipQuery{Name: "Abyssal whip", Volume: 1})

	assert.Equal(t, 888.0, response.Transaction.Profit())
}

func TestFlipHandler_RejectsWrongRequest(t *testing.T) {
	_, err := queries.NewFlipHandler(nil).Handle(context.Background(), &queries.DecantQuery{})

	assert.EqualError(t, err, "invalid request type")
}

func TestBestFlipHandler_DefaultsToEveryItem(t *testing.T) {
	source := newSource(func(feed *helpers.MockPriceFeedClient) {
		feed.AddOffer("Feather", 100, 100)
		feed.AddOffer("Abyssal whip", 100, 1000)
		feed.AddOffer("Rune platebody", 10, 500)
		feed.AddItem("Dragon claws", nil)
	})

	response := handle[*queries.TransactionsResponse](t, queries.NewBestFlipHandler(source),
		&queries.BestFlipQuery{Volume: 1, Top: 2})

	names := lo.Map(response.Transactions, func(tx *trading.SaleTransaction, _ int) string { return tx.Item().Name() })
	assert.Equal(t, []string{"Abyssal whip", "Rune platebody"}, names)
}

func TestDecantHandler(t *testing.T) {
	source := newSource(func(feed *helpers.MockPriceFeedClient) {
		for dose := 1; dose <= 4; dose++ {
			feed.AddOffer(queries.PotionDoseNames("Prayer potion")[dose-1], dose*100, dose*100)
		}
	})

	response := handle[*queries.DecantResponse](t, queries.NewDecantHandler(source),
		&queries.DecantQuery{Potion: "Prayer potion", StartingDose: 1, Volume: 1})

	require.Len(t, response.Transactions, 3)
	assert.InDelta(t, -2.5, response.Transactions[0].Profit(), 1e-9)
	assert.Equal(t, 100.0, response.LowestPerDoseValue[4])
}

func TestPotionDoseNames(t *testing.T) {
	expected := []string{"Prayer potion(1)", "Prayer potion(2)", "Prayer potion(3)", "Prayer potion(4)"}

	assert.Equal(t, expected, queries.PotionDoseNames("Prayer potion"))
	assert.Equal(t, expected, queries.PotionDoseNames("Prayer potion(3)"))
}

func TestHighAlchemyHandler(t *testing.T) {
	source := newSource(func(feed *helpers.MockPriceFeedClient) {
		feed.AddOffer(trading.NatureRune, 100, 100)
		feed.AddItem("Rune 2h sword", lo.ToPtr(100))
		feed.SetLatest("Rune 2h sword", lo.ToPtr(100), lo.ToPtr(100))
	})

	response := handle[*queries.HighAlchemyResponse](t, queries.NewHighAlchemyHandler(source),
		&queries.HighAlchemyQuery{Name: "Rune 2h sword", Volume: 2})

	assert.Equal(t, -204.0, response.Profit)
	assert.Equal(t, "Rune 2h sword", response.Alchable.Name())
}

func TestCombineHandler(t *testing.T) {
	source := newSource(func(feed *helpers.MockPriceFeedClient) {
		feed.AddOffer("Godsword blade", 250_000, 260_000)
		feed.AddOffer("Armadyl hilt", 9_000_000, 9_100_000)
		feed.AddOffer("Armadyl godsword", 9_900_000, 10_000_000)
	})

	response := handle[*queries.TransactionResponse](t, queries.NewCombineHandler(source), &queries.CombineQuery{
		Parts:   []string{"Godsword blade", "Armadyl hilt"},
		Product: "Armadyl godsword",
		Volume:  1,
	})

	assert.Equal(t, 649_997.0, response.Transaction.Profit())
}

func TestTransformHandler_Planks(t *testing.T) {
	source := newSource(func(feed *helpers.MockPriceFeedClient) {
		feed.AddOffer("Oak logs", 100, 110)
		feed.AddOffer("Oak plank", 400, 500)
	})
	handler := queries.NewTransformHandler(source)

	sawmill := handle[*queries.TransactionResponse](t, handler, &queries.TransformQuery{
		Kind: queries.TransformPlanks, Material: "Oak logs", Product: "Oak plank", Volume: 1,
	})
	plankMake := handle[*queries.TransactionResponse](t, handler, &queries.TransformQuery{
		Kind: queries.TransformPlanks, Material: "Oak logs", Product: "Oak plank", Volume: 1,
		Method: queries.PlankMethodPlankMake,
	})

	assert.Equal(t, 351, sawmill.Transaction.FullBuyPrice())
	assert.Equal(t, 143.0, sawmill.Transaction.Profit())
	assert.Equal(t, 276, plankMake.Transaction.FullBuyPrice())
	assert.Equal(t, 218.0, plankMake.Transaction.Profit())
}

func TestTransformHandler_UnknownKindOrMethod(t *testing.T) {
	handler := queries.NewTransformHandler(newSource(func(*helpers.MockPriceFeedClient) {}))

	_, err := handler.Handle(context.Background(), &queries.TransformQuery{Kind: "smelt"})
	assert.ErrorContains(t, err, "unknown transform")

	_, err = handler.Handle(context.Background(), &queries.TransformQuery{Kind: queries.TransformPlanks, Method: "axe"})
	assert.ErrorContains(t, err, "unknown plank method")
}

func TestRepairHandler_DerivesDegradedName(t *testing.T) {
	source := newSource(func(feed *helpers.MockPriceFeedClient) {
		feed.AddOffer("Dharok's greataxe", 990_000, 1_000_000)
		feed.AddOffer("Dharok's greataxe 0", 750_000, 760_000)
	})

	response := handle[*queries.TransactionResponse](t, queries.NewRepairHandler(source),
		&queries.RepairQuery{Name: "Dharok's greataxe", Level: 1, Volume: 1})

	assert.Equal(t, 140_498.0, response.Transaction.Profit())
}

func TestRepairHandler_ValidatesBeforeFetching(t *testing.T) {
	handler := queries.NewRepairHandler(newSource(func(*helpers.MockPriceFeedClient) {}))

	_, err := handler.Handle(context.Background(), &queries.RepairQuery{Name: "Dharok's greataxe", Level: 0})
	var invalid *trading.ErrInvalidLevel
	assert.ErrorAs(t, err, &invalid)

	_, err = handler.Handle(context.Background(), &queries.RepairQuery{Name: "Bronze sword", Level: 50})
	var incorrect *trading.ErrIncorrectItemProvided
	assert.ErrorAs(t, err, &incorrect)
}

func TestRepairSetHandler(t *testing.T) {
	set, err := items.LoadEquipmentSet("Dharok's")
	require.NoError(t, err)

	source := newSource(func(feed *helpers.MockPriceFeedClient) {
		for _, piece := range set.Pieces() {
			feed.AddOffer(piece, 1_000_000, 1_100_000)
		}
		for _, piece := range set.Degraded() {
			feed.AddOffer(piece, 800_000, 850_000)
		}
		feed.AddOffer(set.Set(), 4_900_000, 5_000_000)
	})

	response := handle[*queries.TransactionResponse](t, queries.NewRepairSetHandler(source),
		&queries.RepairSetQuery{Set: "Dharok's", Level: 1, Volume: 1})

	assert.Equal(t, 1_421_645.0, response.Transaction.Profit())
}

func TestRepairSetHandler_UnknownSet(t *testing.T) {
	handler := queries.NewRepairSetHandler(newSource(func(*helpers.MockPriceFeedClient) {}))

	_, err := handler.Handle(context.Background(), &queries.RepairSetQuery{Set: "Akrisae's", Level: 1, Volume: 1})

	var unknown *items.ErrUnknownEquipmentSet
	assert.ErrorAs(t, err, &unknown)
}
