package utils

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/taxscope/corporate-tax-analyzer/dto"
)

// FormatCurrency renders a whole-unit amount as a euro string with
// thousands grouping, e.g. 1234 -> "€1,234". The minus sign goes before
// the symbol: -1234 -> "-€1,234".
func FormatCurrency(amount int64) string {
	if amount < 0 {
		return "-€" + humanize.Comma(-amount)
	}
	return "€" + humanize.Comma(amount)
}

// FormatCurrencyAmount is the tolerant variant for values that have not
// been through normalization yet. Non-numeric input renders as "€0".
func FormatCurrencyAmount(value string) string {
	return FormatCurrency(int64(math.Round(CleanNumericValue(value))))
}

// ResultsTable converts a record into the fixed-order display table.
func ResultsTable(record *dto.FinancialRecord) []dto.ResultRow {
	return []dto.ResultRow{
		{Field: "Company Name", Value: record.CompanyName},
		{Field: "Country", Value: record.Country},
		{Field: "Total Revenue", Value: FormatCurrency(record.TotalRevenue)},
		{Field: "Total Expenses", Value: FormatCurrency(record.TotalExpenses)},
		{Field: "Depreciation", Value: FormatCurrency(record.Depreciation)},
		{Field: "Deductions", Value: FormatCurrency(record.Deductions)},
		{Field: "Net Taxable Income", Value: FormatCurrency(record.NetTaxableIncome)},
		{Field: "Final Tax Owed", Value: FormatCurrency(record.FinalTaxOwed)},
	}
}
