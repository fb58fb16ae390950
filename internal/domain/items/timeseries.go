package items

import (
	"math"
)

// Timeseries holds an item's price history as two index-aligned series.
// highest[i] and lowest[i] describe the same time bucket.
type Timeseries struct {
	item     *Item
	highest  []Price
	lowest   []Price
	timestep Timestep
}

// NewTimeseries creates a Timeseries, rejecting series of different lengths
func NewTimeseries(item *Item, highest, lowest []Price, timestep Timestep) (*Timeseries, error) {
	if len(highest) != len(lowest) {
		return nil, ErrMismatchedSeries
	}

	return &Timeseries{
		item:     item,
		highest:  append([]Price(nil), highest...),
		lowest:   append([]Price(nil), lowest...),
		timestep: timestep,
	}, nil
}

func (t *Timeseries) Item() *Item {
	return t.item
}

func (t *Timeseries) Timestep() Timestep {
	return t.timestep
}

func (t *Timeseries) Len() int {
	return len(t.highest)
}

// Highest returns a copy of the instant-buy series
func (t *Timeseries) Highest() []Price {
	return append([]Price(nil), t.highest...)
}

// Lowest returns a copy of the instant-sell series
func (t *Timeseries) Lowest() []Price {
	return append([]Price(nil), t.lowest...)
}

// TimeRange returns the earliest and latest timestamps in the series
func (t *Timeseries) TimeRange() (int64, int64, error) {
	if len(t.highest) == 0 {
		return 0, 0, ErrEmptyTimeseries
	}

	start, end := t.highest[0].Timestamp(), t.highest[0].Timestamp()
	for _, p := range t.highest[1:] {
		start = min(start, p.Timestamp())
		end = max(end, p.Timestamp())
	}
	return start, end, nil
}

// TotalVolume sums the traded volume of the instant-buy series.
// Buckets without a recorded volume contribute nothing.
func (t *Timeseries) TotalVolume() int {
	total := 0
	for _, p := range t.highest {
		if v, ok := p.Volume(); ok {
			total += v
		}
	}
	return total
}

// AsOffers converts every bucket into an Offer snapshot
func (t *Timeseries) AsOffers() []Offer {
	offers := make([]Offer, len(t.highest))
	for i := range t.highest {
		offers[i] = NewOffer(t.item, t.highest[i], t.lowest[i])
	}
	return offers
}

// LatestOffer returns the Offer built from the final bucket
func (t *Timeseries) LatestOffer() (Offer, error) {
	n := len(t.highest)
	if n == 0 {
		return Offer{}, ErrEmptyTimeseries
	}
	return NewOffer(t.item, t.highest[n-1], t.lowest[n-1]), nil
}

// Timestamps returns the bucket timestamps in series order
func (t *Timeseries) Timestamps() []int64 {
	out := make([]int64, len(t.highest))
	for i, p := range t.highest {
		out[i] = p.Timestamp()
	}
	return out
}

// HighestPrices returns the instant-buy prices as floats, NaN where absent
func (t *Timeseries) HighestPrices() []float64 {
	return priceArray(t.highest)
}

// LowestPrices returns the instant-sell prices as floats, NaN where absent
func (t *Timeseries) LowestPrices() []float64 {
	return priceArray(t.lowest)
}

// Margins returns highest minus lowest per bucket, NaN where either is absent
func (t *Timeseries) Margins() []float64 {
	high := t.HighestPrices()
	low := t.LowestPrices()
	out := make([]float64, len(high))
	for i := range high {
		out[i] = high[i] - low[i]
	}
	return out
}

func priceArray(prices []Price) []float64 {
	out := make([]float64, len(prices))
	for i, p := range prices {
		if v, ok := p.Value(); ok {
			out[i] = float64(v)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
