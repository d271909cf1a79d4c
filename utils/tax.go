package utils

// Netherlands corporate income tax, 2024 rates: 19% on the first €200,000,
// 25.8% on everything above it.
const (
	lowerBracketCeiling = 200000.0
	lowerBracketRate    = 0.19
	upperBracketRate    = 0.258
)

// CalculateCorporateTax computes the tax owed on a taxable income under the
// two-bracket schedule. Losses and zero income owe nothing; tax is never
// negative.
func CalculateCorporateTax(taxableIncome float64) float64 {
	if taxableIncome <= 0 {
		return 0.0
	}
	if taxableIncome <= lowerBracketCeiling {
		return taxableIncome * lowerBracketRate
	}
	return lowerBracketCeiling*lowerBracketRate + (taxableIncome-lowerBracketCeiling)*upperBracketRate
}
