package queries

import (
	"context"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// OfferSource provides current offers by item name
type OfferSource interface {
	Offers(ctx context.Context, names ...string) ([]items.Offer, error)
	AllOffers(ctx context.Context) ([]items.Offer, error)
}
