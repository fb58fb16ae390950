package trading_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/trading"
)

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice int
		volume    float64
		expected  int
	}{
		{"one percent of sale", 1000, 1, 10},
		{"exempt below lower price", 99, 1, 0},
		{"exempt regardless of volume", 99, 1_000_000, 0},
		{"taxed at lower price", 100, 1, 1},
		{"rounded to nearest coin", 999, 1, 10},
		{"rounded down", 140, 1, 1},
		{"fractional volume", 199, 0.5, 1},
		{"capped at threshold", 1_000_000_000, 1, trading.TaxThreshold},
		{"zero volume", 1000, 0, 0},
		{"NaN volume", 1000, math.NaN(), 0},
		{"infinite volume", 1000, math.Inf(1), 0},
		{"negative infinite volume", 1000, math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trading.CalculateTax(tt.unitPrice, tt.volume))
		})
	}
}

func TestPriceBelowTaxThreshold(t *testing.T) {
	assert.True(t, trading.PriceBelowTaxThreshold(0))
	assert.True(t, trading.PriceBelowTaxThreshold(99))
	assert.False(t, trading.PriceBelowTaxThreshold(100))
}
