package items

import (
	"fmt"
	"time"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/shared"
)

// Price is a timestamped observation from the price feed.
// An absent price means no trade was recorded and is distinct from zero.
type Price struct {
	timestamp int64
	price     *int
	volume    *int
}

// NewPrice creates a Price observation; price and volume may be nil
func NewPrice(timestamp int64, price, volume *int) Price {
	return Price{
		timestamp: timestamp,
		price:     copyInt(price),
		volume:    copyInt(volume),
	}
}

// PriceAt is shorthand for an observation with a known price and no volume
func PriceAt(timestamp int64, price int) Price {
	return Price{timestamp: timestamp, price: &price}
}

// Unpriced returns an observation with no recorded trade
func Unpriced(timestamp int64) Price {
	return Price{timestamp: timestamp}
}

func (p Price) Timestamp() int64 {
	return p.timestamp
}

// Time returns the observation timestamp as UTC time
func (p Price) Time() time.Time {
	return shared.EpochSeconds(p.timestamp)
}

// Value returns the price and whether one was recorded
func (p Price) Value() (int, bool) {
	return derefInt(p.price)
}

// Volume returns the traded volume and whether one was recorded
func (p Price) Volume() (int, bool) {
	return derefInt(p.volume)
}

// IsAvailable reports whether a price was recorded
func (p Price) IsAvailable() bool {
	return p.price != nil
}

// Equal compares two observations by timestamp, price and volume
func (p Price) Equal(other Price) bool {
	if p.timestamp != other.timestamp {
		return false
	}
	return equalIntPtr(p.price, other.price) && equalIntPtr(p.volume, other.volume)
}

func (p Price) String() string {
	if v, ok := p.Value(); ok {
		return fmt.Sprintf("%d@%d", v, p.timestamp)
	}
	return fmt.Sprintf("n/a@%d", p.timestamp)
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
