package trading

import (
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// Combiner values buying every part and selling the item they combine into,
// e.g. a godsword blade and hilt joined into a godsword.
func Combiner(parts []items.Offer, product items.Offer, volume float64) (*SaleTransaction, error) {
	if len(parts) == 0 {
		return nil, &ErrMismatchedInput{Reason: "at least one part is required to combine"}
	}

	cost := 0
	for _, part := range parts {
		partCost, err := buyCost(part, volume)
		if err != nil {
			return nil, err
		}
		cost += partCost
	}

	return sell(product, cost, volume)
}
