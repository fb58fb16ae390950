package queries

import (
	"context"
	"fmt"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
)

// HighAlchemyQuery - Query valuing high level alchemy on an item
type HighAlchemyQuery struct {
	Name   string
	Volume float64
}

// HighAlchemyResponse - Response containing the alchemy profit and the offers it was computed from
type HighAlchemyResponse struct {
	Profit     float64
	NatureRune items.Offer
	Alchable   items.Offer
}

// HighAlchemyHandler - Handles alchemy queries
type HighAlchemyHandler struct {
	source OfferSource
}

// NewHighAlchemyHandler creates a new alchemy query handler
func NewHighAlchemyHandler(source OfferSource) *HighAlchemyHandler {
	return &HighAlchemyHandler{source: source}
}

// Handle executes the high alchemy query
func (h *HighAlchemyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*HighAlchemyQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	offers, err := h.source.Offers(ctx, trading.NatureRune, query.Name)
	if err != nil {
		return nil, err
	}

	profit, err := trading.HighAlchemy(offers[0], offers[1], query.Volume)
	if err != nil {
		return nil, err
	}

	return &HighAlchemyResponse{
		Profit:     profit,
		NatureRune: offers[0],
		Alchable:   offers[1],
	}, nil
}
