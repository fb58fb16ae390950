package trading

import (
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// NatureRune is the rune consumed by every alchemy cast
const NatureRune = "Nature rune"

// HighAlchemy returns the profit of buying volume units of an item plus one nature rune each
// and casting high level alchemy on them. There is no resale, so the result is a plain amount.
func HighAlchemy(natureRune, alchable items.Offer, volume float64) (float64, error) {
	if volume < 0 {
		return 0, &ErrInvalidTransaction{Field: "volume", Value: volume, Reason: "volume must be non-negative"}
	}

	if alchable.Item() == nil {
		return 0, &ErrIncorrectItemProvided{Item: "<none>", Reason: "offer has no item"}
	}
	highAlch, ok := alchable.Item().HighAlch()
	if !ok {
		return 0, &ErrIncorrectItemProvided{Item: alchable.Name(), Reason: "item has no high alchemy value"}
	}

	runePrice, err := BuyPrice(natureRune)
	if err != nil {
		return 0, err
	}
	itemPrice, err := BuyPrice(alchable)
	if err != nil {
		return 0, err
	}

	cost := volume * float64(runePrice+itemPrice)
	return volume*float64(highAlch) - cost, nil
}
