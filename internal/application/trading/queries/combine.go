package queries

import (
	"context"
	"fmt"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
)

// CombineQuery - Query valuing buying parts and selling the item they assemble into
type CombineQuery struct {
	Parts   []string
	Product string
	Volume  float64
}

// CombineHandler - Handles combination queries
type CombineHandler struct {
	source OfferSource
}

// NewCombineHandler creates a new combine query handler
func NewCombineHandler(source OfferSource) *CombineHandler {
	return &CombineHandler{source: source}
}

// Handle executes the combine query
func (h *CombineHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*CombineQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if len(query.Parts) == 0 {
		return nil, &trading.ErrMismatchedInput{Reason: "at least one part is required"}
	}

	offers, err := h.source.Offers(ctx, append(append([]string(nil), query.Parts...), query.Product)...)
	if err != nil {
		return nil, err
	}

	parts, product := offers[:len(offers)-1], offers[len(offers)-1]
	transaction, err := trading.Combiner(parts, product, query.Volume)
	if err != nil {
		return nil, err
	}

	return &TransactionResponse{Transaction: transaction}, nil
}
