package queries

import (
	"context"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// PriceSource resolves item names into current offers and history
type PriceSource interface {
	Offers(ctx context.Context, names ...string) ([]items.Offer, error)
	AllOffers(ctx context.Context) ([]items.Offer, error)
	Timeseries(ctx context.Context, name string, timestep items.Timestep) (*items.Timeseries, error)
	Search(ctx context.Context, name string, threshold int) ([]*items.Item, error)
}
