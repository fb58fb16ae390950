package trading_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
	"github.com/Lee-Tyrer/grandexchange-go/test/helpers"
)

func TestFlip(t *testing.T) {
	// Arrange
	offer := helpers.NewOffer("Abyssal whip", 100, 1000)

	// Act
	tx, err := trading.Flip(offer, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 101, tx.FullBuyPrice())
	assert.Equal(t, 999, tx.IndividualSoldPrice())
	assert.Equal(t, 10, tx.Tax())
	assert.Equal(t, 888.0, tx.Profit())
}

func TestFlip_ScalesBuyPriceByVolume(t *testing.T) {
	tx, err := trading.Flip(helpers.NewOffer("Abyssal whip", 100, 1000), 10)

	require.NoError(t, err)
	assert.Equal(t, 1010, tx.FullBuyPrice())
	assert.Equal(t, 100, tx.Tax())
	assert.Equal(t, 8880.0, tx.Profit())
}

func TestFlip_NoMargin(t *testing.T) {
	tx, err := trading.Flip(helpers.NewOffer("Feather", 100, 100), 1)

	require.NoError(t, err)
	assert.Equal(t, -2.0, tx.Profit())
}

func TestFlip_PriceUnavailable(t *testing.T) {
	_, err := trading.Flip(helpers.NewOfferWithoutHighest("Abyssal whip", 100), 1)
	var unavailable *trading.ErrPriceUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "highest", unavailable.Side)

	_, err = trading.Flip(helpers.NewOfferWithoutLowest("Abyssal whip", 1000), 1)
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "lowest", unavailable.Side)
}

func TestFlip_RejectsNegativeQuotedPrices(t *testing.T) {
	var invalid *trading.ErrInvalidTransaction

	_, err := trading.Flip(helpers.NewOffer("Abyssal whip", 100, -500), 1)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "individual_sold_price", invalid.Field)

	_, err = trading.Flip(helpers.NewOffer("Abyssal whip", -1, 1000), 1)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "full_buy_price", invalid.Field)
}

func TestFlip_ZeroHighestSellsForNothing(t *testing.T) {
	tx, err := trading.Flip(helpers.NewOffer("Bones", 0, 0), 1)

	require.NoError(t, err)
	assert.Equal(t, 0, tx.IndividualSoldPrice())
	assert.Equal(t, -1.0, tx.Profit())
}

func TestBestFlip_RanksDescendingAndSkipsUnpriced(t *testing.T) {
	offers := []items.Offer{
		helpers.NewOffer("Feather", 100, 100),
		helpers.NewOffer("Abyssal whip", 100, 1000),
		helpers.NewOfferWithoutLowest("Dragon claws", 5000),
		helpers.NewOffer("Rune platebody", 10, 500),
	}

	top, err := trading.BestFlip(offers, 1, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Abyssal whip", top[0].Item().Name())
	assert.Equal(t, 999, top[0].IndividualSoldPrice())
	assert.Equal(t, "Rune platebody", top[1].Item().Name())
	assert.Equal(t, 483.0, top[1].Profit())

	all, err := trading.BestFlip(offers, 1, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, -2.0, all[2].Profit())
}

func TestHighAlchemy(t *testing.T) {
	natureRune := helpers.NewOffer(trading.NatureRune, 100, 100)
	alchable := helpers.OfferFor(helpers.NewAlchableItem("Rune 2h sword", 100), 100, 100)

	profit, err := trading.HighAlchemy(natureRune, alchable, 1)
	require.NoError(t, err)
	assert.Equal(t, -102.0, profit)

	profit, err = trading.HighAlchemy(natureRune, alchable, 2)
	require.NoError(t, err)
	assert.Equal(t, -204.0, profit)
}

func TestHighAlchemy_ItemWithoutAlchValue(t *testing.T) {
	_, err := trading.HighAlchemy(
		helpers.NewOffer(trading.NatureRune, 100, 100),
		helpers.NewOffer("Coins", 1, 1),
		1,
	)

	var incorrect *trading.ErrIncorrectItemProvided
	assert.ErrorAs(t, err, &incorrect)
}

func TestCombiner(t *testing.T) {
	parts := []items.Offer{
		helpers.NewOffer("Godsword blade", 250_000, 260_000),
		helpers.NewOffer("Armadyl hilt", 9_000_000, 9_100_000),
	}
	product := helpers.NewOffer("Armadyl godsword", 9_900_000, 10_000_000)

	tx, err := trading.Combiner(parts, product, 1)

	require.NoError(t, err)
	assert.Equal(t, 9_250_002, tx.FullBuyPrice())
	assert.Equal(t, 9_999_999, tx.IndividualSoldPrice())
	assert.Equal(t, 649_997.0, tx.Profit())
	assert.Equal(t, "Armadyl godsword", tx.Item().Name())
}

func TestCombiner_RequiresParts(t *testing.T) {
	_, err := trading.Combiner(nil, helpers.NewOffer("Armadyl godsword", 1, 1), 1)

	var mismatched *trading.ErrMismatchedInput
	assert.ErrorAs(t, err, &mismatched)
}

func TestCombiner_RejectsNegativeProductPrice(t *testing.T) {
	parts := []items.Offer{helpers.NewOffer("Godsword blade", 250_000, 260_000)}
	product := helpers.NewOffer("Armadyl godsword", 9_900_000, -500)

	_, err := trading.Combiner(parts, product, 1)

	var invalid *trading.ErrInvalidTransaction
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "individual_sold_price", invalid.Field)
}

func TestTransform_Specialisations(t *testing.T) {
	clean, err := trading.CleanHerbs(
		helpers.NewOffer("Grimy ranarr weed", 4500, 4600),
		helpers.NewOffer("Ranarr weed", 4900, 5000),
		1,
	)
	require.NoError(t, err)
	assert.Equal(t, 4701, clean.FullBuyPrice())
	assert.Equal(t, 248.0, clean.Profit())

	unfinished, err := trading.CreateUnfinished(
		helpers.NewOffer("Ranarr weed", 4900, 5000),
		helpers.NewOffer("Ranarr potion (unf)", 5100, 5300),
		2,
	)
	require.NoError(t, err)
	assert.Equal(t, 2*(4901+trading.ZahursFee), unfinished.FullBuyPrice())

	crushed, err := trading.Crush(
		helpers.NewOffer("Bird nest", 1000, 1100),
		helpers.NewOffer("Crushed nest", 1200, 1300),
		1,
	)
	require.NoError(t, err)
	assert.Equal(t, 1051, crushed.FullBuyPrice())
}

func TestTransform_RejectsNegativeFee(t *testing.T) {
	_, err := trading.Transform(helpers.NewOffer("Logs", 10, 10), helpers.NewOffer("Plank", 10, 10), 1, -5)

	var invalid *trading.ErrInvalidTransaction
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "fee", invalid.Field)
}

func TestCreatePlanks(t *testing.T) {
	tx, err := trading.CreatePlanks(
		helpers.NewOffer("Logs", 10, 12),
		helpers.NewOffer("Plank", 8, 10),
		1,
		trading.SawmillCosts,
	)
	require.NoError(t, err)
	assert.Equal(t, 111, tx.FullBuyPrice())
	assert.Equal(t, -102.0, tx.Profit())

	tx, err = trading.CreatePlanks(
		helpers.NewOffer("Oak logs", 100, 110),
		helpers.NewOffer("Oak plank", 300, 400),
		1,
		trading.PlankMakeCosts,
	)
	require.NoError(t, err)
	assert.Equal(t, 276, tx.FullBuyPrice())
}

func TestCreatePlanks_UnknownLog(t *testing.T) {
	_, err := trading.CreatePlanks(
		helpers.NewOffer("Magic logs", 1000, 1100),
		helpers.NewOffer("Magic plank", 1, 1),
		1,
		nil,
	)

	var notFound *trading.ErrItemNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Magic logs", notFound.Name)
	assert.Equal(t, []string{"Logs", "Mahogany logs", "Oak logs", "Teak logs"}, notFound.Choices)
}

func TestRepairBarrows(t *testing.T) {
	repaired := helpers.NewOffer("Dharok's greataxe", 990_000, 1_000_000)
	degraded := helpers.NewOffer("Dharok's greataxe 0", 750_000, 760_000)

	tx, err := trading.RepairBarrows(repaired, degraded, 1, 1)

	require.NoError(t, err)
	assert.Equal(t, 849_501, tx.FullBuyPrice())
	assert.Equal(t, 10_000, tx.Tax())
	assert.Equal(t, 140_498.0, tx.Profit())
}

func TestRepairBarrows_Errors(t *testing.T) {
	repaired := helpers.NewOffer("Dharok's greataxe", 990_000, 1_000_000)

	t.Run("degraded name does not match", func(t *testing.T) {
		_, err := trading.RepairBarrows(repaired, helpers.NewOffer("Dharok's helm 0", 1, 1), 1, 1)
		var incorrect *trading.ErrIncorrectItemProvided
		assert.ErrorAs(t, err, &incorrect)
	})

	t.Run("not a barrows piece", func(t *testing.T) {
		_, err := trading.RepairBarrows(
			helpers.NewOffer("Bronze sword", 10, 20),
			helpers.NewOffer("Bronze sword 0", 5, 6),
			1, 1,
		)
		var incorrect *trading.ErrIncorrectItemProvided
		assert.ErrorAs(t, err, &incorrect)
	})

	for _, level := range []int{0, 121, -5} {
		_, err := trading.RepairBarrows(repaired, helpers.NewOffer("Dharok's greataxe 0", 1, 1), level, 1)
		var invalid *trading.ErrInvalidLevel
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, level, invalid.Level)
	}
}

func TestRepairCost_ScalesWithLevel(t *testing.T) {
	cost, err := trading.RepairCost("Dharok's greataxe", 1)
	require.NoError(t, err)
	assert.Equal(t, 99_500, cost)

	cost, err = trading.RepairCost("Dharok's greataxe", 99)
	require.NoError(t, err)
	assert.Equal(t, 50_500, cost)

	cost, err = trading.RepairCost("Ahrim's hood", 120)
	require.NoError(t, err)
	assert.Equal(t, 24_000, cost)
}

func TestRepairBarrowsSet(t *testing.T) {
	set, err := items.LoadEquipmentSet("Dharok's")
	require.NoError(t, err)

	var repaired, degraded []items.Offer
	for _, piece := range set.Pieces() {
		repaired = append(repaired, helpers.NewOffer(piece, 1_000_000, 1_100_000))
	}
	for _, piece := range set.Degraded() {
		degraded = append(degraded, helpers.NewOffer(piece, 800_000, 850_000))
	}
	setOffer := helpers.NewOffer(set.Set(), 4_900_000, 5_000_000)

	tx, err := trading.RepairBarrowsSet(repaired, degraded, setOffer, 1, 1)

	require.NoError(t, err)
	assert.Equal(t, 3_528_354, tx.FullBuyPrice())
	assert.Equal(t, 1_421_645.0, tx.Profit())
	assert.Equal(t, set.Set(), tx.Item().Name())
}

func TestRepairBarrowsSet_Mismatched(t *testing.T) {
	repaired := []items.Offer{helpers.NewOffer("Dharok's helm", 1, 1)}
	degraded := []items.Offer{helpers.NewOffer("Verac's helm 0", 1, 1)}

	_, err := trading.RepairBarrowsSet(repaired, degraded, helpers.NewOffer("Dharok's armour set", 1, 1), 1, 1)

	var mismatched *trading.ErrMismatchedInput
	assert.ErrorAs(t, err, &mismatched)

	_, err = trading.RepairBarrowsSet(repaired, nil, helpers.NewOffer("Dharok's armour set", 1, 1), 1, 1)
	assert.ErrorAs(t, err, &mismatched)
}

func TestRepairBarrowsSet_RejectsPieceUsedTwice(t *testing.T) {
	repaired := []items.Offer{
		helpers.NewOffer("Dharok's helm", 1_000_000, 1_100_000),
		helpers.NewOffer("Dharok's platebody", 1_000_000, 1_100_000),
	}
	degraded := []items.Offer{
		helpers.NewOffer("Dharok's helm 0", 800_000, 850_000),
		helpers.NewOffer("Dharok's helm 0", 800_000, 850_000),
	}

	_, err := trading.RepairBarrowsSet(repaired, degraded, helpers.NewOffer("Dharok's armour set", 1, 5_000_000), 1, 1)

	var mismatched *trading.ErrMismatchedInput
	require.ErrorAs(t, err, &mismatched)
	assert.Contains(t, mismatched.Reason, "Dharok's helm")
}

func TestDosage(t *testing.T) {
	dose, err := trading.Dosage("Potion (3)")
	require.NoError(t, err)
	assert.Equal(t, 3, dose)

	dose, err = trading.Dosage("Prayer potion(4)")
	require.NoError(t, err)
	assert.Equal(t, 4, dose)

	for _, name := range []string{"Not a potion", "Potion (5)", "(1", ""} {
		_, err := trading.Dosage(name)
		var parseErr *trading.ErrDoseParse
		assert.ErrorAs(t, err, &parseErr, name)
	}
}

func potionFamily() []items.Offer {
	return []items.Offer{
		helpers.NewOffer("Potion (1)", 100, 100),
		helpers.NewOffer("Potion (2)", 200, 200),
		helpers.NewOffer("Potion (3)", 300, 300),
		helpers.NewOffer("Potion (4)", 400, 400),
	}
}

func TestDecant(t *testing.T) {
	potions := potionFamily()

	transactions, err := trading.Decant(potions, 1, 1)

	require.NoError(t, err)
	require.Len(t, transactions, 3)

	expectedVolumes := []float64{1.0 / 2, 1.0 / 3, 1.0 / 4}
	expectedProfits := []float64{-2.5, -7.0 / 3, -2.25}
	for i, tx := range transactions {
		assert.Equal(t, 101, tx.FullBuyPrice())
		assert.InDelta(t, expectedVolumes[i], tx.Volume(), 1e-9)
		assert.InDelta(t, expectedProfits[i], tx.Profit(), 1e-9)
	}

	_, annotated := potions[0].Dose()
	assert.False(t, annotated, "input offers must not be annotated")
}

func TestDecant_Errors(t *testing.T) {
	_, err := trading.Decant(potionFamily()[1:], 1, 1)
	var notFound *trading.ErrItemNotFound
	assert.ErrorAs(t, err, &notFound)

	_, err = trading.Decant([]items.Offer{helpers.NewOffer("Abyssal whip", 1, 1)}, 1, 1)
	var parseErr *trading.ErrDoseParse
	assert.ErrorAs(t, err, &parseErr)
}

func TestPotions_PerDoseValues(t *testing.T) {
	potions, err := trading.NewPotions([]items.Offer{
		helpers.NewOffer("Prayer potion(4)", 8000, 8400),
		helpers.NewOffer("Prayer potion(3)", 6300, 6600),
		helpers.NewOfferWithoutHighest("Prayer potion(1)", 2500),
	})
	require.NoError(t, err)

	lowest := potions.LowestPerDoseValue()
	assert.Equal(t, map[int]float64{4: 2000, 3: 2100, 1: 2500}, lowest)

	highest := potions.HighestPerDoseValue()
	assert.Equal(t, map[int]float64{4: 2100, 3: 2200}, highest)

	offer, err := potions.Get(3)
	require.NoError(t, err)
	dose, ok := offer.Dose()
	assert.True(t, ok)
	assert.Equal(t, 3, dose)
}
