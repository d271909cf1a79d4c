package dto

// DocumentType identifies which extraction path feeds the analysis.
type DocumentType string

const (
	DocTypePDF DocumentType = "pdf"
	DocTypeCSV DocumentType = "csv"
)

// DocumentContent is the raw output of the document content extractor:
// the plain text of the document plus a textual rendering of every
// detected table, in document order. It lives only for the duration of
// one analysis.
type DocumentContent struct {
	RawText    string `json:"raw_text"`
	TablesText string `json:"tables_text"`
}

// FinancialRecord holds the reconciled line items for one uploaded
// document. All amounts are whole currency units. NetTaxableIncome and
// FinalTaxOwed are always recomputed locally from the four base fields;
// the model's own arithmetic is never trusted.
type FinancialRecord struct {
	CompanyName      string `json:"company_name"`
	Country          string `json:"country"`
	TotalRevenue     int64  `json:"total_revenue"`
	TotalExpenses    int64  `json:"total_expenses"`
	Depreciation     int64  `json:"depreciation"`
	Deductions       int64  `json:"deductions"`
	NetTaxableIncome int64  `json:"net_taxable_income"`
	FinalTaxOwed     int64  `json:"final_tax_owed"`
}

// ResultRow is one label/value pair of the display table.
type ResultRow struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
