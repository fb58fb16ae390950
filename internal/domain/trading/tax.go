package trading

import "math"

const (
	// TaxRate is the Grand Exchange sale tax
	TaxRate = 0.01

	// TaxLowerItemPrice is the unit price below which sales are exempt
	TaxLowerItemPrice = 100

	// TaxThreshold caps the tax charged on a single transaction
	TaxThreshold = 5_000_000
)

// PriceBelowTaxThreshold reports whether a unit price is exempt from tax
func PriceBelowTaxThreshold(unitPrice int) bool {
	return unitPrice < TaxLowerItemPrice
}

// CalculateTax returns the tax on selling volume units at unitPrice.
// Tax is rounded to the nearest coin and never exceeds TaxThreshold.
// Non-finite volumes carry no tax.
func CalculateTax(unitPrice int, volume float64) int {
	if PriceBelowTaxThreshold(unitPrice) || volume <= 0 || math.IsNaN(volume) || math.IsInf(volume, 0) {
		return 0
	}

	tax := math.Round(float64(unitPrice) * volume * TaxRate)
	if tax > TaxThreshold {
		return TaxThreshold
	}

	return int(tax)
}
