package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// TaxAnalysisResponse is the final response structure for one analyzed
// document. Warnings carry non-fatal pipeline notices (extraction
// failures, truncated document text); LossNotice is set when the company
// closed the period with a loss.
type TaxAnalysisResponse struct {
	Record      *FinancialRecord `json:"record"`
	Results     []ResultRow      `json:"results"`
	Warnings    []string         `json:"warnings,omitempty"`
	LossNotice  string           `json:"loss_notice,omitempty"`
	ProcessedAt string           `json:"processed_at"`
}

// TaxReport is the downloadable export of one analysis.
type TaxReport struct {
	AnalysisResults *FinancialRecord `json:"analysis_results"`
	Timestamp       string           `json:"timestamp"`
}
