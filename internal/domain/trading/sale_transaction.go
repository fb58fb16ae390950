package trading

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// SaleTransaction values buying a batch of an item and selling it on the Grand Exchange.
//
// fullBuyPrice is the total acquisition cost of the batch while individualSoldPrice
// is per unit. Tax and profit are derived once at construction.
type SaleTransaction struct {
	item                *items.Item
	fullBuyPrice        int
	individualSoldPrice int
	volume              float64
	tax                 int
	profit              float64
}

// NewSaleTransaction creates a SaleTransaction with validation
func NewSaleTransaction(item *items.Item, fullBuyPrice, individualSoldPrice int, volume float64) (*SaleTransaction, error) {
	if fullBuyPrice < 0 {
		return nil, &ErrInvalidTransaction{
			Field:  "full_buy_price",
			Value:  float64(fullBuyPrice),
			Reason: "full_buy_price must be non-negative",
		}
	}
	if individualSoldPrice < 0 {
		return nil, &ErrInvalidTransaction{
			Field:  "individual_sold_price",
			Value:  float64(individualSoldPrice),
			Reason: "individual_sold_price must be non-negative",
		}
	}
	if volume < 0 || math.IsNaN(volume) || math.IsInf(volume, 0) {
		return nil, &ErrInvalidTransaction{
			Field:  "volume",
			Value:  volume,
			Reason: "volume must be a non-negative finite number",
		}
	}

	tax := CalculateTax(individualSoldPrice, volume)

	return &SaleTransaction{
		item:                item,
		fullBuyPrice:        fullBuyPrice,
		individualSoldPrice: individualSoldPrice,
		volume:              volume,
		tax:                 tax,
		profit:              float64(individualSoldPrice)*volume - float64(tax) - float64(fullBuyPrice),
	}, nil
}

// Getters

func (t *SaleTransaction) Item() *items.Item {
	return t.item
}

func (t *SaleTransaction) FullBuyPrice() int {
	return t.fullBuyPrice
}

func (t *SaleTransaction) IndividualSoldPrice() int {
	return t.individualSoldPrice
}

func (t *SaleTransaction) Volume() float64 {
	return t.volume
}

func (t *SaleTransaction) Tax() int {
	return t.tax
}

func (t *SaleTransaction) Profit() float64 {
	return t.profit
}

// Revenue returns the gross sale value before tax
func (t *SaleTransaction) Revenue() float64 {
	return float64(t.individualSoldPrice) * t.volume
}

// ReturnOnInvestment returns profit as a fraction of the buy price, or 0 for a free batch
func (t *SaleTransaction) ReturnOnInvestment() float64 {
	if t.fullBuyPrice == 0 {
		return 0
	}
	return t.profit / float64(t.fullBuyPrice)
}

// IsProfitable returns true if the transaction makes money after tax
func (t *SaleTransaction) IsProfitable() bool {
	return t.profit > 0
}

// Equal reports whether two transactions have the same profit
func (t *SaleTransaction) Equal(other *SaleTransaction) bool {
	if other == nil {
		return false
	}
	return t.profit == other.profit
}

// CompareTo orders the transaction against other by profit.
// Comparing against anything other than a SaleTransaction fails.
func (t *SaleTransaction) CompareTo(other any) (int, error) {
	switch o := other.(type) {
	case *SaleTransaction:
		if o == nil {
			return 0, &ErrIncomparable{Type: "nil transaction"}
		}
		return Compare(t, o), nil
	case SaleTransaction:
		return Compare(t, &o), nil
	default:
		return 0, &ErrIncomparable{Type: fmt.Sprintf("%T", other)}
	}
}

func (t *SaleTransaction) String() string {
	name := "<unknown>"
	if t.item != nil {
		name = t.item.Name()
	}
	return fmt.Sprintf("%s: buy=%d sell=%d volume=%g tax=%d profit=%.2f",
		name, t.fullBuyPrice, t.individualSoldPrice, t.volume, t.tax, t.profit)
}

// Compare orders two transactions ascending by profit
func Compare(a, b *SaleTransaction) int {
	return cmp.Compare(a.profit, b.profit)
}

// SortByProfit sorts transactions ascending by profit, keeping the order of ties
func SortByProfit(transactions []*SaleTransaction) {
	slices.SortStableFunc(transactions, Compare)
}

// RankByProfit sorts transactions descending by profit, keeping the order of ties
func RankByProfit(transactions []*SaleTransaction) {
	slices.SortStableFunc(transactions, func(a, b *SaleTransaction) int {
		return Compare(b, a)
	})
}

// SortValues sorts arbitrary values ascending by profit.
// Every value must be a *SaleTransaction; anything else fails with ErrIncomparable.
func SortValues(values []any) ([]*SaleTransaction, error) {
	transactions := make([]*SaleTransaction, 0, len(values))
	for _, v := range values {
		t, ok := v.(*SaleTransaction)
		if !ok || t == nil {
			return nil, &ErrIncomparable{Type: fmt.Sprintf("%T", v)}
		}
		transactions = append(transactions, t)
	}

	SortByProfit(transactions)
	return transactions, nil
}
