package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/Lee-Tyrer/grandexchange-go/test/bdd/steps"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// NOTE: SaleTransactionScenario registered FIRST so its shared result steps
	// ("the profit should be", "the full buy price should be") take precedence
	steps.InitializeSaleTransactionScenario(sc)
	steps.InitializeCalculatorScenario(sc)
}
