package trading

import (
	"fmt"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
)

const (
	MinSkillLevel = 1
	MaxSkillLevel = 120
)

// RepairBarrowsCosts are the base costs of repairing a fully degraded piece per slot
var RepairBarrowsCosts = map[items.Slot]int{
	items.SlotHelm:   60_000,
	items.SlotBody:   90_000,
	items.SlotLegs:   80_000,
	items.SlotWeapon: 100_000,
}

// CheckSkillLevel rejects levels outside [MinSkillLevel, MaxSkillLevel]
func CheckSkillLevel(level int) error {
	if level < MinSkillLevel || level > MaxSkillLevel {
		return &ErrInvalidLevel{Level: level}
	}
	return nil
}

// RepairCost returns the cost of repairing one fully degraded piece at the given Smithing level.
// The base cost shrinks linearly: base * (1 - level/200).
func RepairCost(piece string, level int) (int, error) {
	if err := CheckSkillLevel(level); err != nil {
		return 0, err
	}

	_, slot, ok := items.FindSetByPiece(piece)
	if !ok {
		return 0, &ErrIncorrectItemProvided{Item: piece, Reason: "not a piece of any known barrows set"}
	}

	return RepairBarrowsCosts[slot] * (200 - level) / 200, nil
}

// RepairBarrows values buying fully degraded barrows pieces, repairing them, and selling them
func RepairBarrows(repaired, degraded items.Offer, level int, volume float64) (*SaleTransaction, error) {
	cost, err := repairBatchCost(repaired.Name(), degraded, level, volume)
	if err != nil {
		return nil, err
	}
	return sell(repaired, cost, volume)
}

// RepairBarrowsSet values repairing every degraded piece and selling the assembled set.
// Degraded pieces are paired one to one with their repaired counterparts by name.
func RepairBarrowsSet(repaired, degraded []items.Offer, setOffer items.Offer, level int, volume float64) (*SaleTransaction, error) {
	if err := CheckSkillLevel(level); err != nil {
		return nil, err
	}
	if len(degraded) == 0 {
		return nil, &ErrMismatchedInput{Reason: "no degraded pieces provided"}
	}
	if len(repaired) != len(degraded) {
		return nil, &ErrMismatchedInput{
			Reason: fmt.Sprintf("%d repaired pieces cannot pair with %d degraded pieces", len(repaired), len(degraded)),
		}
	}

	repairedByName := make(map[string]items.Offer, len(repaired))
	for _, offer := range repaired {
		repairedByName[offer.Name()] = offer
	}

	paired := make(map[string]bool, len(repaired))
	cost := 0
	for _, piece := range degraded {
		name, ok := items.RepairedName(piece.Name())
		if !ok {
			return nil, &ErrMismatchedInput{Reason: fmt.Sprintf("%s is not a degraded piece", piece.Name())}
		}
		match, ok := repairedByName[name]
		if !ok {
			return nil, &ErrMismatchedInput{Reason: fmt.Sprintf("no repaired piece pairs with %s", piece.Name())}
		}
		if paired[name] {
			return nil, &ErrMismatchedInput{Reason: fmt.Sprintf("%s is paired with more than one degraded piece", name)}
		}
		paired[name] = true

		pieceCost, err := repairBatchCost(match.Name(), piece, level, volume)
		if err != nil {
			return nil, err
		}
		cost += pieceCost
	}

	return sell(setOffer, cost, volume)
}

// repairBatchCost is the cost of buying volume degraded pieces and repairing them
func repairBatchCost(repairedName string, degraded items.Offer, level int, volume float64) (int, error) {
	if err := CheckSkillLevel(level); err != nil {
		return 0, err
	}

	if degraded.Name() != items.DegradedName(repairedName) {
		return 0, &ErrIncorrectItemProvided{
			Item:   degraded.Name(),
			Reason: fmt.Sprintf("expected the degraded form %q", items.DegradedName(repairedName)),
		}
	}

	repairCost, err := RepairCost(repairedName, level)
	if err != nil {
		return 0, err
	}

	cost, err := buyCost(degraded, volume)
	if err != nil {
		return 0, err
	}

	return cost + batchCost(repairCost, volume), nil
}
