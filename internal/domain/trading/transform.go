package trading

import (
	"sort"

	"github.com/samber/lo"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

const (
	// ZahursFee is charged per herb cleaned or made into an unfinished potion
	ZahursFee = 200

	// WesleysFee is charged per item crushed
	WesleysFee = 50
)

// PlankCosts maps a log name to the per-plank conversion fee
type PlankCosts map[string]int

var (
	// SawmillCosts are the sawmill operator's fees
	SawmillCosts = PlankCosts{
		"Logs":          100,
		"Oak logs":      250,
		"Teak logs":     500,
		"Mahogany logs": 1500,
	}

	// PlankMakeCosts are the rune costs of casting Plank Make
	PlankMakeCosts = PlankCosts{
		"Logs":          70,
		"Oak logs":      175,
		"Teak logs":     350,
		"Mahogany logs": 1050,
	}
)

// Names returns the log names with a known fee, sorted
func (c PlankCosts) Names() []string {
	names := lo.Keys(c)
	sort.Strings(names)
	return names
}

// Fee returns the conversion fee for a log
func (c PlankCosts) Fee(log string) (int, error) {
	fee, ok := c[log]
	if !ok {
		return 0, &ErrItemNotFound{Name: log, Choices: c.Names()}
	}
	return fee, nil
}

// Transform values buying a material, paying a flat per-unit fee to convert it,
// and selling the product
func Transform(material, product items.Offer, volume float64, fee int) (*SaleTransaction, error) {
	if fee < 0 {
		return nil, &ErrInvalidTransaction{Field: "fee", Value: float64(fee), Reason: "fee must be non-negative"}
	}

	cost, err := buyCost(material, volume)
	if err != nil {
		return nil, err
	}

	return sell(product, cost+batchCost(fee, volume), volume)
}

// CleanHerbs values having Zahur clean grimy herbs
func CleanHerbs(grimy, clean items.Offer, volume float64) (*SaleTransaction, error) {
	return Transform(grimy, clean, volume, ZahursFee)
}

// CreateUnfinished values having Zahur turn clean herbs into unfinished potions
func CreateUnfinished(clean, unfinished items.Offer, volume float64) (*SaleTransaction, error) {
	return Transform(clean, unfinished, volume, ZahursFee)
}

// Crush values having Wesley crush an item, e.g. bird nests or dragon bones
func Crush(material, crushed items.Offer, volume float64) (*SaleTransaction, error) {
	return Transform(material, crushed, volume, WesleysFee)
}

// CreatePlanks values converting logs into planks at the fee listed in costs.
// A nil costs table defaults to SawmillCosts.
func CreatePlanks(logs, plank items.Offer, volume float64, costs PlankCosts) (*SaleTransaction, error) {
	if costs == nil {
		costs = SawmillCosts
	}

	fee, err := costs.Fee(logs.Name())
	if err != nil {
		return nil, err
	}

	return Transform(logs, plank, volume, fee)
}
