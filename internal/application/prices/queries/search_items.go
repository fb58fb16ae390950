package queries

import (
	"context"
	"fmt"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

// SearchItemsQuery - Query for catalog items with names similar to Name
type SearchItemsQuery struct {
	Name      string
	Threshold int
}

// SearchItemsResponse - Response containing the matching items
type SearchItemsResponse struct {
	Items []*items.Item
}

// SearchItemsHandler - Handles fuzzy catalog searches
type SearchItemsHandler struct {
	source PriceSource
}

// NewSearchItemsHandler creates a new search handler
func NewSearchItemsHandler(source PriceSource) *SearchItemsHandler {
	return &SearchItemsHandler{source: source}
}

// Handle executes the search items query
func (h *SearchItemsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*SearchItemsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	threshold := query.Threshold
	if threshold <= 0 {
		threshold = items.DefaultSearchThreshold
	}
	if threshold > 100 {
		return nil, fmt.Errorf("threshold must be between 1 and 100, got %d", threshold)
	}

	found, err := h.source.Search(ctx, query.Name, threshold)
	if err != nil {
		return nil, err
	}

	return &SearchItemsResponse{Items: found}, nil
}
