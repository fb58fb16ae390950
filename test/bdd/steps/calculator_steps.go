package steps

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cucumber/godog"
	"github.com/samber/lo"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
	"github.com/Lee-Tyrer/grandexchange-go/test/helpers"
)

type calculatorContext struct {
	offers       map[string]items.Offer
	order        []string
	transactions []*trading.SaleTransaction
	dose         int
}

func (cc *calculatorContext) reset() {
	cc.offers = make(map[string]items.Offer)
	cc.order = nil
	cc.transactions = nil
	cc.dose = 0
}

func (cc *calculatorContext) addOffer(offer items.Offer) {
	if _, exists := cc.offers[offer.Name()]; !exists {
		cc.order = append(cc.order, offer.Name())
	}
	cc.offers[offer.Name()] = offer
}

func (cc *calculatorContext) offer(name string) (items.Offer, error) {
	offer, ok := cc.offers[name]
	if !ok {
		return items.Offer{}, fmt.Errorf("no offer for %q in scenario", name)
	}
	return offer, nil
}

func (cc *calculatorContext) allOffers() []items.Offer {
	return lo.Map(cc.order, func(name string, _ int) items.Offer { return cc.offers[name] })
}

// Given steps

func (cc *calculatorContext) anOfferWithLowestAndHighest(name string, lowest, highest int) error {
	cc.addOffer(helpers.NewOffer(name, lowest, highest))
	return nil
}

func (cc *calculatorContext) anOfferWithOnlyALowestPriceOf(name string, lowest int) error {
	cc.addOffer(helpers.NewOfferWithoutHighest(name, lowest))
	return nil
}

func (cc *calculatorContext) everyPieceOfTheSetTrades(setName string, lowest, highest, degradedLowest, degradedHighest int) error {
	set, err := items.LoadEquipmentSet(setName)
	if err != nil {
		return err
	}
	for _, piece := range set.Pieces() {
		cc.addOffer(helpers.NewOffer(piece, lowest, highest))
	}
	for _, piece := range set.Degraded() {
		cc.addOffer(helpers.NewOffer(piece, degradedLowest, degradedHighest))
	}
	return nil
}

// When steps

func (cc *calculatorContext) iFlipWithAVolumeOf(name string, volume float64) error {
	offer, err := cc.offer(name)
	if err != nil {
		return err
	}
	sharedTransaction, sharedErr = trading.Flip(offer, volume)
	return nil
}

func (cc *calculatorContext) iRankFlipsWithAVolumeOfKeepingTheTop(volume float64, top int) error {
	cc.transactions, sharedErr = trading.BestFlip(cc.allOffers(), volume, top)
	return nil
}

func (cc *calculatorContext) iDecantFromDoseWithAVolumeOf(startingDose int, volume float64) error {
	cc.transactions, sharedErr = trading.Decant(cc.allOffers(), startingDose, volume)
	return nil
}

func (cc *calculatorContext) iCheckTheDosageOf(name string) error {
	cc.dose, sharedErr = trading.Dosage(name)
	return nil
}

func (cc *calculatorContext) iRepairAtLevel(name string, level int) error {
	repaired, err := cc.offer(name)
	if err != nil {
		return err
	}
	degraded, err := cc.offer(items.DegradedName(name))
	if err != nil {
		return err
	}
	sharedTransaction, sharedErr = trading.RepairBarrows(repaired, degraded, level, 1)
	return nil
}

func (cc *calculatorContext) iRepairTheSetAtLevel(setName string, level int) error {
	set, err := items.LoadEquipmentSet(setName)
	if err != nil {
		return err
	}

	repaired := make([]items.Offer, 0, len(set.Pieces()))
	for _, piece := range set.Pieces() {
		offer, err := cc.offer(piece)
		if err != nil {
			return err
		}
		repaired = append(repaired, offer)
	}
	degraded := make([]items.Offer, 0, len(set.Degraded()))
	for _, piece := range set.Degraded() {
		offer, err := cc.offer(piece)
		if err != nil {
			return err
		}
		degraded = append(degraded, offer)
	}
	setOffer, err := cc.offer(set.Set())
	if err != nil {
		return err
	}

	sharedTransaction, sharedErr = trading.RepairBarrowsSet(repaired, degraded, setOffer, level, 1)
	return nil
}

func (cc *calculatorContext) iMakePlanksFromIntoAtThe(logs, plank, method string) error {
	logOffer, err := cc.offer(logs)
	if err != nil {
		return err
	}
	plankOffer, err := cc.offer(plank)
	if err != nil {
		return err
	}

	costs := trading.SawmillCosts
	if method == "plank make spell" {
		costs = trading.PlankMakeCosts
	}
	sharedTransaction, sharedErr = trading.CreatePlanks(logOffer, plankOffer, 1, costs)
	return nil
}

// Then steps

func (cc *calculatorContext) theCalculationShouldFailWith(message string) error {
	if sharedErr == nil {
		return fmt.Errorf("expected error containing %q, got none", message)
	}
	if !strings.Contains(sharedErr.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, sharedErr.Error())
	}
	return nil
}

func (cc *calculatorContext) theRankedFlipsShouldBe(order string) error {
	if sharedErr != nil {
		return sharedErr
	}
	got := strings.Join(lo.Map(cc.transactions, func(t *trading.SaleTransaction, _ int) string {
		return t.Item().Name()
	}), ", ")
	if got != order {
		return fmt.Errorf("expected ranking %q, got %q", order, got)
	}
	return nil
}

func (cc *calculatorContext) decantTransactionsShouldBeProduced(count int) error {
	if sharedErr != nil {
		return sharedErr
	}
	if len(cc.transactions) != count {
		return fmt.Errorf("expected %d transactions, got %d", count, len(cc.transactions))
	}
	return nil
}

func (cc *calculatorContext) everyDecantShouldCost(cost int) error {
	for i, t := range cc.transactions {
		if t.FullBuyPrice() != cost {
			return fmt.Errorf("decant %d: expected cost %d, got %d", i+1, cost, t.FullBuyPrice())
		}
	}
	return nil
}

func (cc *calculatorContext) decantShouldSellAVolumeOf(position int, volume float64) error {
	if position < 1 || position > len(cc.transactions) {
		return fmt.Errorf("no decant at position %d", position)
	}
	got := cc.transactions[position-1].Volume()
	if math.Abs(got-volume) > 1e-3 {
		return fmt.Errorf("decant %d: expected volume %.3f, got %.3f", position, volume, got)
	}
	return nil
}

func (cc *calculatorContext) theDosageShouldBe(expected int) error {
	if sharedErr != nil {
		return sharedErr
	}
	if cc.dose != expected {
		return fmt.Errorf("expected dose %d, got %d", expected, cc.dose)
	}
	return nil
}

func InitializeCalculatorScenario(ctx *godog.ScenarioContext) {
	cc := &calculatorContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an offer for "([^"]*)" with lowest (\d+) and highest (\d+)$`, cc.anOfferWithLowestAndHighest)
	ctx.Step(`^an offer for "([^"]*)" with only a lowest price of (\d+)$`, cc.anOfferWithOnlyALowestPriceOf)
	ctx.Step(`^every "([^"]*)" piece trades at lowest (\d+) and highest (\d+), degraded at lowest (\d+) and highest (\d+)$`, cc.everyPieceOfTheSetTrades)

	// When steps
	ctx.Step(`^I flip "([^"]*)" with a volume of ([0-9.]+)$`, cc.iFlipWithAVolumeOf)
	ctx.Step(`^I rank flips with a volume of ([0-9.]+) keeping the top (\d+)$`, cc.iRankFlipsWithAVolumeOfKeepingTheTop)
	ctx.Step(`^I decant from dose (\d+) with a volume of ([0-9.]+)$`, cc.iDecantFromDoseWithAVolumeOf)
	ctx.Step(`^I check the dosage of "([^"]*)"$`, cc.iCheckTheDosageOf)
	ctx.Step(`^I repair "([^"]*)" at level (-?\d+)$`, cc.iRepairAtLevel)
	ctx.Step(`^I repair the "([^"]*)" set at level (-?\d+)$`, cc.iRepairTheSetAtLevel)
	ctx.Step(`^I make planks from "([^"]*)" into "([^"]*)" at the (sawmill|plank make spell)$`, cc.iMakePlanksFromIntoAtThe)

	// Then steps
	ctx.Step(`^the calculation should fail with "([^"]*)"$`, cc.theCalculationShouldFailWith)
	ctx.Step(`^the ranked flips should be "([^"]*)"$`, cc.theRankedFlipsShouldBe)
	ctx.Step(`^(\d+) decant transactions should be produced$`, cc.decantTransactionsShouldBeProduced)
	ctx.Step(`^every decant should cost (\d+)$`, cc.everyDecantShouldCost)
	ctx.Step(`^decant (\d+) should sell a volume of ([0-9.]+)$`, cc.decantShouldSellAVolumeOf)
	ctx.Step(`^the dosage should be (\d+)$`, cc.theDosageShouldBe)
}
