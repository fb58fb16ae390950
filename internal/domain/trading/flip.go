package trading

import (
	"errors"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// Flip values buying volume units of an item and reselling the same item
func Flip(offer items.Offer, volume float64) (*SaleTransaction, error) {
	cost, err := buyCost(offer, volume)
	if err != nil {
		return nil, err
	}
	return sell(offer, cost, volume)
}

// BestFlip flips every offer with both prices available and returns the topN most profitable,
// highest profit first. topN <= 0 returns every flip.
func BestFlip(offers []items.Offer, volume float64, topN int) ([]*SaleTransaction, error) {
	flips := make([]*SaleTransaction, 0, len(offers))

	for _, offer := range offers {
		t, err := Flip(offer, volume)
		if err != nil {
			var unavailable *ErrPriceUnavailable
			if errors.As(err, &unavailable) {
				continue
			}
			return nil, err
		}
		flips = append(flips, t)
	}

	RankByProfit(flips)

	if topN > 0 && topN < len(flips) {
		flips = flips[:topN]
	}
	return flips, nil
}
