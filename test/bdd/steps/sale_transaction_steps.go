package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
	"github.com/Lee-Tyrer/grandexchange-go/test/helpers"
)

// Shared results so calculator and transaction steps assert on the same outcome
var (
	sharedTransaction *trading.SaleTransaction
	sharedErr         error
)

type saleTransactionContext struct {
	tax          int
	taxExempt    bool
	transactions []*trading.SaleTransaction
	compareErr   error
}

func (sc *saleTransactionContext) reset() {
	sc.tax = 0
	sc.taxExempt = false
	sc.transactions = nil
	sc.compareErr = nil
	sharedTransaction = nil
	sharedErr = nil
}

// Tax steps

func (sc *saleTransactionContext) theTaxOnCoinsForAVolumeOfIsCalculated(unitPrice int, volume float64) error {
	sc.tax = trading.CalculateTax(unitPrice, volume)
	return nil
}

func (sc *saleTransactionContext) theTaxShouldBe(expected int) error {
	if sc.tax != expected {
		return fmt.Errorf("expected tax %d, got %d", expected, sc.tax)
	}
	return nil
}

func (sc *saleTransactionContext) aUnitPriceOfCoinsIsChecked(unitPrice int) error {
	sc.taxExempt = trading.PriceBelowTaxThreshold(unitPrice)
	return nil
}

func (sc *saleTransactionContext) thePriceShouldBeExemptFromTax() error {
	if !sc.taxExempt {
		return fmt.Errorf("expected price to be exempt from tax")
	}
	return nil
}

func (sc *saleTransactionContext) thePriceShouldBeSubjectToTax() error {
	if sc.taxExempt {
		return fmt.Errorf("expected price to be subject to tax")
	}
	return nil
}

// Transaction steps

func (sc *saleTransactionContext) aSaleBoughtForAndSoldForEachWithAVolumeOf(bought, sold int, volume float64) error {
	sharedTransaction, sharedErr = trading.NewSaleTransaction(helpers.NewItem("Abyssal whip"), bought, sold, volume)
	return nil
}

func (sc *saleTransactionContext) theFollowingSales(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 4 {
			return fmt.Errorf("expected 4 columns (item, bought, sold, volume), got %d", len(row.Cells))
		}

		bought, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		sold, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return err
		}
		volume, err := strconv.ParseFloat(row.Cells[3].Value, 64)
		if err != nil {
			return err
		}

		tx, err := trading.NewSaleTransaction(helpers.NewItem(row.Cells[0].Value), bought, sold, volume)
		if err != nil {
			return err
		}
		sc.transactions = append(sc.transactions, tx)
	}
	return nil
}

func (sc *saleTransactionContext) iSortTheSalesByProfit() error {
	trading.SortByProfit(sc.transactions)
	return nil
}

func (sc *saleTransactionContext) iRankTheSalesByProfit() error {
	trading.RankByProfit(sc.transactions)
	return nil
}

func (sc *saleTransactionContext) iCompareTheFirstSaleWith(value string) error {
	if len(sc.transactions) == 0 {
		return fmt.Errorf("no sales to compare")
	}
	_, sc.compareErr = sc.transactions[0].CompareTo(value)
	return nil
}

func (sc *saleTransactionContext) theSalesShouldBeInTheOrder(order string) error {
	expected := strings.Split(order, ", ")
	if len(expected) != len(sc.transactions) {
		return fmt.Errorf("expected %d sales, got %d", len(expected), len(sc.transactions))
	}
	for i, name := range expected {
		if got := sc.transactions[i].Item().Name(); got != name {
			return fmt.Errorf("position %d: expected %s, got %s", i+1, name, got)
		}
	}
	return nil
}

func (sc *saleTransactionContext) theComparisonShouldFail() error {
	var incomparable *trading.ErrIncomparable
	if !errors.As(sc.compareErr, &incomparable) {
		return fmt.Errorf("expected an incomparable error, got %v", sc.compareErr)
	}
	return nil
}

func (sc *saleTransactionContext) theTransactionTaxShouldBe(expected int) error {
	if sharedTransaction == nil {
		return fmt.Errorf("no transaction was created: %v", sharedErr)
	}
	if sharedTransaction.Tax() != expected {
		return fmt.Errorf("expected tax %d, got %d", expected, sharedTransaction.Tax())
	}
	return nil
}

func (sc *saleTransactionContext) theTransactionShouldBeRejectedFor(field string) error {
	var invalid *trading.ErrInvalidTransaction
	if !errors.As(sharedErr, &invalid) {
		return fmt.Errorf("expected an invalid transaction error, got %v", sharedErr)
	}
	if invalid.Field != field {
		return fmt.Errorf("expected rejection for %s, got %s", field, invalid.Field)
	}
	return nil
}

// theProfitShouldBe checks the profit to within a thousandth of a coin
func (sc *saleTransactionContext) theProfitShouldBe(expected float64) error {
	if sharedTransaction == nil {
		return fmt.Errorf("no transaction was created: %v", sharedErr)
	}
	if math.Abs(sharedTransaction.Profit()-expected) > 1e-3 {
		return fmt.Errorf("expected profit %.3f, got %.3f", expected, sharedTransaction.Profit())
	}
	return nil
}

func (sc *saleTransactionContext) theFullBuyPriceShouldBe(expected int) error {
	if sharedTransaction == nil {
		return fmt.Errorf("no transaction was created: %v", sharedErr)
	}
	if sharedTransaction.FullBuyPrice() != expected {
		return fmt.Errorf("expected full buy price %d, got %d", expected, sharedTransaction.FullBuyPrice())
	}
	return nil
}

func InitializeSaleTransactionScenario(ctx *godog.ScenarioContext) {
	sc := &saleTransactionContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a sale bought for (-?\d+) and sold for (-?\d+) each with a volume of (-?[0-9.]+)$`, sc.aSaleBoughtForAndSoldForEachWithAVolumeOf)
	ctx.Step(`^the following sales:$`, sc.theFollowingSales)

	// When steps
	ctx.Step(`^the tax on (\d+) coins for a volume of ([0-9.]+) is calculated$`, sc.theTaxOnCoinsForAVolumeOfIsCalculated)
	ctx.Step(`^a unit price of (\d+) coins is checked$`, sc.aUnitPriceOfCoinsIsChecked)
	ctx.Step(`^I sort the sales by profit$`, sc.iSortTheSalesByProfit)
	ctx.Step(`^I rank the sales by profit$`, sc.iRankTheSalesByProfit)
	ctx.Step(`^I compare the first sale with "([^"]*)"$`, sc.iCompareTheFirstSaleWith)

	// Then steps
	ctx.Step(`^the tax should be (\d+)$`, sc.theTaxShouldBe)
	ctx.Step(`^the price should be exempt from tax$`, sc.thePriceShouldBeExemptFromTax)
	ctx.Step(`^the price should be subject to tax$`, sc.thePriceShouldBeSubjectToTax)
	ctx.Step(`^the transaction tax should be (\d+)$`, sc.theTransactionTaxShouldBe)
	ctx.Step(`^the profit should be (-?[0-9.]+)$`, sc.theProfitShouldBe)
	ctx.Step(`^the full buy price should be (\d+)$`, sc.theFullBuyPriceShouldBe)
	ctx.Step(`^the transaction should be rejected for "([^"]*)"$`, sc.theTransactionShouldBeRejectedFor)
	ctx.Step(`^the sales should be in the order "([^"]*)"$`, sc.theSalesShouldBeInTheOrder)
	ctx.Step(`^the comparison should fail$`, sc.theComparisonShouldFail)
}
