package items

import (
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/shared"
)

// Item is the immutable catalog record of a tradeable Grand Exchange item
type Item struct {
	id       int
	name     string
	value    int
	highAlch *int
	lowAlch  *int
	limit    *int // buy limit per four hours, nil when unknown
}

// NewItem creates a new Item with validation
func NewItem(id int, name string, value int, highAlch, lowAlch, limit *int) (*Item, error) {
	if id < 0 {
		return nil, shared.NewValidationError("id", "id must be non-negative")
	}
	if name == "" {
		return nil, shared.NewValidationError("name", "name cannot be empty")
	}
	if value < 0 {
		return nil, shared.NewValidationError("value", "value must be non-negative")
	}

	return &Item{
		id:       id,
		name:     name,
		value:    value,
		highAlch: copyInt(highAlch),
		lowAlch:  copyInt(lowAlch),
		limit:    copyInt(limit),
	}, nil
}

func (i *Item) ID() int {
	return i.id
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Value() int {
	return i.value
}

// HighAlch returns the high alchemy return value, if the item can be alched
func (i *Item) HighAlch() (int, bool) {
	return derefInt(i.highAlch)
}

// LowAlch returns the low alchemy return value, if the item can be alched
func (i *Item) LowAlch() (int, bool) {
	return derefInt(i.lowAlch)
}

// Limit returns the buy limit, if the feed reported one
func (i *Item) Limit() (int, bool) {
	return derefInt(i.limit)
}

func (i *Item) String() string {
	return i.name
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func derefInt(v *int) (int, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
