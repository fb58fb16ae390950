package items

// Offer is a snapshot of one item's current best prices.
//   - highest: instant-buy price, what a seller receives filling against it
//   - lowest: instant-sell price, what a buyer pays filling against it
//
// Offers are values; WithDose returns an annotated copy and never mutates the receiver.
type Offer struct {
	item    *Item
	highest Price
	lowest  Price
	dose    *int
}

// NewOffer creates an Offer for the item
func NewOffer(item *Item, highest, lowest Price) Offer {
	return Offer{
		item:    item,
		highest: highest,
		lowest:  lowest,
	}
}

func (o Offer) Item() *Item {
	return o.item
}

func (o Offer) Name() string {
	if o.item == nil {
		return ""
	}
	return o.item.Name()
}

func (o Offer) Highest() Price {
	return o.highest
}

func (o Offer) Lowest() Price {
	return o.lowest
}

// Dose returns the parsed potion dose, if one was attached
func (o Offer) Dose() (int, bool) {
	return derefInt(o.dose)
}

// WithDose returns a copy of the offer annotated with a dose count
func (o Offer) WithDose(dose int) Offer {
	o.dose = &dose
	return o
}

// Margin returns highest minus lowest when both prices are known
func (o Offer) Margin() (int, bool) {
	high, okHigh := o.highest.Value()
	low, okLow := o.lowest.Value()
	if !okHigh || !okLow {
		return 0, false
	}
	return high - low, true
}

// Equal compares two offers by item and both price points
func (o Offer) Equal(other Offer) bool {
	if o.Name() != other.Name() {
		return false
	}
	return o.highest.Equal(other.highest) && o.lowest.Equal(other.lowest)
}
