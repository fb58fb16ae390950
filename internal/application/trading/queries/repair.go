package queries

import (
	"context"
	"fmt"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
)

// RepairQuery - Query valuing repairing a fully degraded barrows piece.
// Name is the repaired piece; its degraded form is derived.
type RepairQuery struct {
	Name   string
	Level  int
	Volume float64
}

// RepairSetQuery - Query valuing repairing every piece of a set and selling the assembled set
type RepairSetQuery struct {
	Set    string
	Level  int
	Volume float64
}

// RepairHandler - Handles single-piece repair queries
type RepairHandler struct {
	source OfferSource
}

// NewRepairHandler creates a new repair query handler
func NewRepairHandler(source OfferSource) *RepairHandler {
	return &RepairHandler{source: source}
}

// Handle executes the repair query
func (h *RepairHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*RepairQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := trading.CheckSkillLevel(query.Level); err != nil {
		return nil, err
	}
	if _, _, ok := items.FindSetByPiece(query.Name); !ok {
		return nil, &trading.ErrIncorrectItemProvided{Item: query.Name, Reason: "not a piece of any known barrows set"}
	}

	offers, err := h.source.Offers(ctx, query.Name, items.DegradedName(query.Name))
	if err != nil {
		return nil, err
	}

	transaction, err := trading.RepairBarrows(offers[0], offers[1], query.Level, query.Volume)
	if err != nil {
		return nil, err
	}

	return &TransactionResponse{Transaction: transaction}, nil
}

// RepairSetHandler - Handles whole-set repair queries
type RepairSetHandler struct {
	source OfferSource
}

// NewRepairSetHandler creates a new set repair query handler
func NewRepairSetHandler(source OfferSource) *RepairSetHandler {
	return &RepairSetHandler{source: source}
}

// Handle executes the set repair query
func (h *RepairSetHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*RepairSetQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if err := trading.CheckSkillLevel(query.Level); err != nil {
		return nil, err
	}

	set, err := items.LoadEquipmentSet(query.Set)
	if err != nil {
		return nil, err
	}

	pieces, degraded := set.Pieces(), set.Degraded()
	names := make([]string, 0, len(pieces)+len(degraded)+1)
	names = append(names, pieces...)
	names = append(names, degraded...)
	names = append(names, set.Set())

	offers, err := h.source.Offers(ctx, names...)
	if err != nil {
		return nil, err
	}

	n := len(pieces)
	transaction, err := trading.RepairBarrowsSet(offers[:n], offers[n:2*n], offers[2*n], query.Level, query.Volume)
	if err != nil {
		return nil, err
	}

	return &TransactionResponse{Transaction: transaction}, nil
}
