package trading

import (
	"math"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// SlippageMargin models the fill price moving one coin against the trader on each side
const SlippageMargin = 1

// BuyPrice returns the per-unit price paid to buy the offer's item: lowest plus slippage.
// A negative quoted lowest price is rejected.
func BuyPrice(offer items.Offer) (int, error) {
	lowest, ok := offer.Lowest().Value()
	if !ok {
		return 0, &ErrPriceUnavailable{Item: offer.Name(), Side: "lowest"}
	}
	if lowest < 0 {
		return 0, &ErrInvalidTransaction{
			Field:  "full_buy_price",
			Value:  float64(lowest),
			Reason: "quoted lowest price must be non-negative",
		}
	}
	return lowest + SlippageMargin, nil
}

// SellPrice returns the per-unit price received selling the offer's item: highest minus slippage.
// A negative quoted highest price is rejected; a highest price of zero sells for zero.
func SellPrice(offer items.Offer) (int, error) {
	highest, ok := offer.Highest().Value()
	if !ok {
		return 0, &ErrPriceUnavailable{Item: offer.Name(), Side: "highest"}
	}
	if highest < 0 {
		return 0, &ErrInvalidTransaction{
			Field:  "individual_sold_price",
			Value:  float64(highest),
			Reason: "quoted highest price must be non-negative",
		}
	}
	return max(highest-SlippageMargin, 0), nil
}

// batchCost prices volume units at unitPrice, rounding fractional batches to the nearest coin
func batchCost(unitPrice int, volume float64) int {
	return int(math.Round(float64(unitPrice) * volume))
}

// buyCost is the total cost of buying volume units of the offer's item
func buyCost(offer items.Offer, volume float64) (int, error) {
	price, err := BuyPrice(offer)
	if err != nil {
		return 0, err
	}
	return batchCost(price, volume), nil
}

// sell builds the transaction for selling product after spending cost on the batch
func sell(product items.Offer, cost int, volume float64) (*SaleTransaction, error) {
	price, err := SellPrice(product)
	if err != nil {
		return nil, err
	}
	return NewSaleTransaction(product.Item(), cost, price, volume)
}
