package queries

import (
	"context"
	"fmt"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
)

// TransformKind selects which conversion service a TransformQuery values
type TransformKind string

const (
	TransformCleanHerbs TransformKind = "herbs"
	TransformUnfinished TransformKind = "unfinished"
	TransformCrush      TransformKind = "crush"
	TransformPlanks     TransformKind = "planks"
)

// PlankMethod selects the fee table used for planks
type PlankMethod string

const (
	PlankMethodSawmill   PlankMethod = "sawmill"
	PlankMethodPlankMake PlankMethod = "plank-make"
)

// TransformQuery - Query valuing buying a material, paying to convert it, and selling the product
type TransformQuery struct {
	Kind     TransformKind
	Material string
	Product  string
	Volume   float64
	Method   PlankMethod
}

// TransformHandler - Handles conversion queries
type TransformHandler struct {
	source OfferSource
}

// NewTransformHandler creates a new transform query handler
func NewTransformHandler(source OfferSource) *TransformHandler {
	return &TransformHandler{source: source}
}

// Handle executes the transform query
func (h *TransformHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*TransformQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	calculate, err := transformFor(query)
	if err != nil {
		return nil, err
	}

	offers, err := h.source.Offers(ctx, query.Material, query.Product)
	if err != nil {
		return nil, err
	}

	transaction, err := calculate(offers[0], offers[1], query.Volume)
	if err != nil {
		return nil, err
	}

	return &TransactionResponse{Transaction: transaction}, nil
}

type transformFunc func(material, product items.Offer, volume float64) (*trading.SaleTransaction, error)

func transformFor(query *TransformQuery) (transformFunc, error) {
	switch query.Kind {
	case TransformCleanHerbs:
		return trading.CleanHerbs, nil
	case TransformUnfinished:
		return trading.CreateUnfinished, nil
	case TransformCrush:
		return trading.Crush, nil
	case TransformPlanks:
		costs, err := plankCosts(query.Method)
		if err != nil {
			return nil, err
		}
		return func(logs, plank items.Offer, volume float64) (*trading.SaleTransaction, error) {
			return trading.CreatePlanks(logs, plank, volume, costs)
		}, nil
	default:
		return nil, fmt.Errorf("unknown transform %q: must be one of herbs, unfinished, crush, planks", query.Kind)
	}
}

func plankCosts(method PlankMethod) (trading.PlankCosts, error) {
	switch method {
	case "", PlankMethodSawmill:
		return trading.SawmillCosts, nil
	case PlankMethodPlankMake:
		return trading.PlankMakeCosts, nil
	default:
		return nil, fmt.Errorf("unknown plank method %q: must be %s or %s", method, PlankMethodSawmill, PlankMethodPlankMake)
	}
}
