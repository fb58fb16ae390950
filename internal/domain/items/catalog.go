package items

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/samber/lo"
)

// DefaultSearchThreshold is the minimum similarity ratio for SearchFor matches
const DefaultSearchThreshold = 90

// Catalog is the read-only set of items known to the price feed
type Catalog struct {
	items  []*Item
	byID   map[int]*Item
	byName map[string]*Item
}

// NewCatalog indexes the given items by id and by exact name.
// Later duplicates of an id or name are ignored.
func NewCatalog(items []*Item) *Catalog {
	c := &Catalog{
		items:  make([]*Item, 0, len(items)),
		byID:   make(map[int]*Item, len(items)),
		byName: make(map[string]*Item, len(items)),
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		if _, exists := c.byID[item.ID()]; exists {
			continue
		}
		c.items = append(c.items, item)
		c.byID[item.ID()] = item
		if _, exists := c.byName[item.Name()]; !exists {
			c.byName[item.Name()] = item
		}
	}

	return c
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the catalog entries in ingestion order
func (c *Catalog) Items() []*Item {
	return append([]*Item(nil), c.items...)
}

// Names returns every item name in ingestion order
func (c *Catalog) Names() []string {
	return lo.Map(c.items, func(item *Item, _ int) string {
		return item.Name()
	})
}

// ByID looks an item up by its feed id
func (c *Catalog) ByID(id int) (*Item, error) {
	item, ok := c.byID[id]
	if !ok {
		return nil, &ErrItemNotInCatalog{ID: id}
	}
	return item, nil
}

// ByName looks an item up by its exact display name
func (c *Catalog) ByName(name string) (*Item, error) {
	item, ok := c.byName[name]
	if !ok {
		return nil, &ErrItemNotInCatalog{Name: name}
	}
	return item, nil
}

// ByNames returns the items whose names appear in names, in catalog order.
// Unknown names are skipped.
func (c *Catalog) ByNames(names ...string) []*Item {
	wanted := lo.SliceToMap(names, func(name string) (string, struct{}) {
		return name, struct{}{}
	})
	return lo.Filter(c.items, func(item *Item, _ int) bool {
		_, ok := wanted[item.Name()]
		return ok
	})
}

// SearchFor returns items whose case-insensitive similarity to name is at least threshold (0-100)
func (c *Catalog) SearchFor(name string, threshold int) []*Item {
	query := strings.ToLower(name)
	return lo.Filter(c.items, func(item *Item, _ int) bool {
		return Similarity(strings.ToLower(item.Name()), query) >= threshold
	})
}

// Similarity returns a 0-100 ratio derived from the edit distance between a and b.
// Identical strings score 100; strings with nothing in common score 0.
func Similarity(a, b string) int {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * float64(longest-distance) / float64(longest)))
}
