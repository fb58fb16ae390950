package queries

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/mediator"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
)

// DecantQuery - Query valuing decanting a potion from one dose into the others.
// Potion is the name without its dose suffix, e.g. "Prayer potion".
type DecantQuery struct {
	Potion       string
	StartingDose int
	Volume       float64
}

// DecantResponse - Response containing one transaction per target dose plus per-dose prices
type DecantResponse struct {
	Transactions        []*trading.SaleTransaction
	LowestPerDoseValue  map[int]float64
	HighestPerDoseValue map[int]float64
}

// DecantHandler - Handles decanting queries
type DecantHandler struct {
	source OfferSource
}

// NewDecantHandler creates a new decant query handler
func NewDecantHandler(source OfferSource) *DecantHandler {
	return &DecantHandler{source: source}
}

// Handle executes the decant query
func (h *DecantHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*DecantQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	offers, err := h.source.Offers(ctx, PotionDoseNames(query.Potion)...)
	if err != nil {
		return nil, err
	}

	potions, err := trading.NewPotions(offers)
	if err != nil {
		return nil, err
	}

	transactions, err := potions.Decant(query.StartingDose, query.Volume)
	if err != nil {
		return nil, err
	}

	return &DecantResponse{
		Transactions:        transactions,
		LowestPerDoseValue:  potions.LowestPerDoseValue(),
		HighestPerDoseValue: potions.HighestPerDoseValue(),
	}, nil
}

// PotionDoseNames expands a potion name into its four dose variants, e.g. "Prayer potion(1)" .. "Prayer potion(4)"
func PotionDoseNames(potion string) []string {
	base := strings.TrimSpace(potion)
	if _, err := trading.Dosage(base); err == nil {
		base = base[:len(base)-3]
	}
	return lo.Map([]int{1, 2, 3, 4}, func(dose int, _ int) string {
		return fmt.Sprintf("%s(%d)", base, dose)
	})
}
