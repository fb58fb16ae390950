package queries

import (
	"context"
	"fmt"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// GetOffersQuery - Query for the latest offers of named items
type GetOffersQuery struct {
	Names []string
}

// GetOffersResponse - Response containing one offer per requested name
type GetOffersResponse struct {
	Offers []items.Offer
}

// GetOffersHandler - Handles latest offer queries
type GetOffersHandler struct {
	source PriceSource
}

// NewGetOffersHandler creates a new offers query handler
func NewGetOffersHandler(source PriceSource) *GetOffersHandler {
	return &GetOffersHandler{source: source}
}

// Handle executes the get offers query
func (h *GetOffersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetOffersQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	offers, err := h.source.Offers(ctx, query.Names...)
	if err != nil {
		return nil, err
	}

	return &GetOffersResponse{Offers: offers}, nil
}
