package queries

import (
	"context"
	"fmt"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
)

// FlipQuery - Query to value buying and immediately reselling an item
type FlipQuery struct {
	Name   string
	Volume float64
}

// BestFlipQuery - Query ranking flips across items.
// An empty Names ranks every item with price data.
type BestFlipQuery struct {
	Names  []string
	Volume float64
	Top    int
}

// TransactionResponse - Response containing a single valued transaction
type TransactionResponse struct {
	Transaction *trading.SaleTransaction
}

// TransactionsResponse - Response containing several valued transactions
type TransactionsResponse struct {
	Transactions []*trading.SaleTransaction
}

// FlipHandler - Handles flip queries
type FlipHandler struct {
	source OfferSource
}

// NewFlipHandler creates a new flip query handler
func NewFlipHandler(source OfferSource) *FlipHandler {
	return &FlipHandler{source: source}
}

// Handle executes the flip query
func (h *FlipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*FlipQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	offers, err := h.source.Offers(ctx, query.Name)
	if err != nil {
		return nil, err
	}

	transaction, err := trading.Flip(offers[0], query.Volume)
	if err != nil {
		return nil, err
	}

	return &TransactionResponse{Transaction: transaction}, nil
}

// BestFlipHandler - Handles best flip queries
type BestFlipHandler struct {
	source OfferSource
}

// NewBestFlipHandler creates a new best flip query handler
func NewBestFlipHandler(source OfferSource) *BestFlipHandler {
	return &BestFlipHandler{source: source}
}

// Handle executes the best flip query
func (h *BestFlipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*BestFlipQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	var offers []items.Offer
	var err error
	if len(query.Names) == 0 {
		offers, err = h.source.AllOffers(ctx)
	} else {
		offers, err = h.source.Offers(ctx, query.Names...)
	}
	if err != nil {
		return nil, err
	}

	ranked, err := trading.BestFlip(offers, query.Volume, query.Top)
	if err != nil {
		return nil, err
	}

	return &TransactionsResponse{Transactions: ranked}, nil
}
