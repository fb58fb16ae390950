package trading

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

var doseSuffixes = map[string]int{
	"(1)": 1,
	"(2)": 2,
	"(3)": 3,
	"(4)": 4,
}

// Dosage parses the dose count from the last three characters of a potion name, e.g. "Prayer potion(3)"
func Dosage(name string) (int, error) {
	if len(name) < 3 {
		return 0, &ErrDoseParse{Name: name}
	}
	dose, ok := doseSuffixes[name[len(name)-3:]]
	if !ok {
		return 0, &ErrDoseParse{Name: name}
	}
	return dose, nil
}

// Potions is a family of dose variants of one potion, each annotated with its dose
type Potions struct {
	offers []items.Offer
}

// NewPotions parses the dose of every offer
func NewPotions(offers []items.Offer) (*Potions, error) {
	annotated := make([]items.Offer, len(offers))
	for i, offer := range offers {
		dose, err := Dosage(offer.Name())
		if err != nil {
			return nil, err
		}
		annotated[i] = offer.WithDose(dose)
	}
	return &Potions{offers: annotated}, nil
}

// Offers returns the dose-annotated offers in input order
func (p *Potions) Offers() []items.Offer {
	return append([]items.Offer(nil), p.offers...)
}

// Get returns the first offer with the given dose
func (p *Potions) Get(dose int) (items.Offer, error) {
	offer, ok := lo.Find(p.offers, func(o items.Offer) bool {
		d, _ := o.Dose()
		return d == dose
	})
	if !ok {
		return items.Offer{}, &ErrItemNotFound{
			Name:    fmt.Sprintf("(%d) dose potion", dose),
			Choices: lo.Map(p.offers, func(o items.Offer, _ int) string { return o.Name() }),
		}
	}
	return offer, nil
}

// Decant values buying volume potions of startingDose and decanting them into every other dose present.
// Doses are conserved, so decanting into a dose d yields startingDose*volume/d potions.
func (p *Potions) Decant(startingDose int, volume float64) ([]*SaleTransaction, error) {
	source, err := p.Get(startingDose)
	if err != nil {
		return nil, err
	}

	cost, err := buyCost(source, volume)
	if err != nil {
		return nil, err
	}

	transactions := make([]*SaleTransaction, 0, len(p.offers))
	for _, target := range p.offers {
		dose, _ := target.Dose()
		if dose == startingDose {
			continue
		}

		vials := float64(startingDose) * volume / float64(dose)
		t, err := sell(target, cost, vials)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// LowestPerDoseValue returns the instant-sell price of one dose for each dose variant.
// Variants without a recorded price are omitted.
func (p *Potions) LowestPerDoseValue() map[int]float64 {
	return p.perDose(items.Offer.Lowest)
}

// HighestPerDoseValue returns the instant-buy price of one dose for each dose variant.
// Variants without a recorded price are omitted.
func (p *Potions) HighestPerDoseValue() map[int]float64 {
	return p.perDose(items.Offer.Highest)
}

func (p *Potions) perDose(side func(items.Offer) items.Price) map[int]float64 {
	values := make(map[int]float64, len(p.offers))
	for _, offer := range p.offers {
		dose, _ := offer.Dose()
		if price, ok := side(offer).Value(); ok {
			values[dose] = float64(price) / float64(dose)
		}
	}
	return values
}

// Decant parses the dose of every potion and values decanting from startingDose
func Decant(potions []items.Offer, startingDose int, volume float64) ([]*SaleTransaction, error) {
	p, err := NewPotions(potions)
	if err != nil {
		return nil, err
	}
	return p.Decant(startingDose, volume)
}
