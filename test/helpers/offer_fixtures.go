package helpers

import (
	"hash/fnv"

	"github.com/samber/lo"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// FixtureTimestamp is the observation time used by every fixture price
const FixtureTimestamp int64 = 1_700_000_000

// NewItem builds a catalog item whose id is derived from its name
func NewItem(name string) *items.Item {
	return lo.Must(items.NewItem(fixtureID(name), name, 1, nil, nil, nil))
}

// NewAlchableItem builds an item with a high alchemy value
func NewAlchableItem(name string, highAlch int) *items.Item {
	return lo.Must(items.NewItem(fixtureID(name), name, highAlch, lo.ToPtr(highAlch), nil, nil))
}

// NewOffer builds an offer with both prices recorded
func NewOffer(name string, lowest, highest int) items.Offer {
	return OfferFor(NewItem(name), lowest, highest)
}

// OfferFor builds an offer for an existing item with both prices recorded
func OfferFor(item *items.Item, lowest, highest int) items.Offer {
	return items.NewOffer(
		item,
		items.PriceAt(FixtureTimestamp, highest),
		items.PriceAt(FixtureTimestamp, lowest),
	)
}

// NewOfferWithoutHighest builds an offer nobody has recently instant-bought
func NewOfferWithoutHighest(name string, lowest int) items.Offer {
	return items.NewOffer(
		NewItem(name),
		items.Unpriced(FixtureTimestamp),
		items.PriceAt(FixtureTimestamp, lowest),
	)
}

// NewOfferWithoutLowest builds an offer nobody has recently instant-sold
func NewOfferWithoutLowest(name string, highest int) items.Offer {
	return items.NewOffer(
		NewItem(name),
		items.PriceAt(FixtureTimestamp, highest),
		items.Unpriced(FixtureTimestamp),
	)
}

func fixtureID(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() & 0x7fffffff)
}
