package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"

	"github.com/taxscope/corporate-tax-analyzer/dto"
	"github.com/taxscope/corporate-tax-analyzer/utils"
)

// maxPromptChars bounds how much document text goes out per completion
// call. The prefix is kept; anything beyond it is dropped.
const maxPromptChars = 15000

const extractionSystemPrompt = `You are an expert Corporate Tax Analyzer AI. Extract financial data accurately from the provided document.

EXTRACTION RULES:
1. Company Name: Look for company headers, "B.V.", "Ltd", "Inc", "Corp"
2. Country: Find country from addresses or legal entity information
3. Total Revenue: Find "Revenue", "Sales", "Turnover", "Income", "Omzet" (can be 0 if not found)
4. Total Expenses: Look for "Expenses", "Costs", "Uitgaven", "Kosten" (expenses are ALWAYS positive numbers)
5. Depreciation: Find "Depreciation", "Afschrijving", "Amortization"
6. Deductions: Look for "Deductions", "Aftrekposten", "Tax Deductions"

CRITICAL RULES:
- ALL financial amounts should be positive numbers (even expenses)
- Look carefully in tables for line items like "Kosten", "Uitgaven", "Expenses"
- Revenue might be 0 for startup or holding companies
- Return "0" if a field is not found, never leave it empty

Return ONLY valid JSON:
{
  "company_name": "string",
  "country": "string",
  "total_revenue": "string_number",
  "total_expenses": "string_number",
  "depreciation": "string_number",
  "deductions": "string_number",
  "net_taxable_income": "string_number",
  "final_tax_owed": "string_number"
}`

var codeFencePattern = regexp.MustCompile("```(?:json)?\n?")

// CompletionClient is the single external text-generation call the
// extractor depends on.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}

// FinancialExtractor asks the model for financial line items and
// reconciles the result into a FinancialRecord.
type FinancialExtractor struct {
	completionClient CompletionClient
}

func NewFinancialExtractor(completionClient CompletionClient) *FinancialExtractor {
	return &FinancialExtractor{
		completionClient: completionClient,
	}
}

// Extract runs one completion call over the document content and returns
// the reconciled record plus any warnings. It never fails: a dead service
// or malformed response degrades to an all-empty, all-zero record with a
// visible warning. The two derived fields are always recomputed locally
// from the four base fields, whatever the model claimed.
func (e *FinancialExtractor) Extract(ctx context.Context, content *dto.DocumentContent) (*dto.FinancialRecord, []string) {
	var warnings []string

	combined := fmt.Sprintf("DOCUMENT TEXT:\n%s\n\nTABLE DATA:\n%s", content.RawText, content.TablesText)
	if len(combined) > maxPromptChars {
		combined = combined[:maxPromptChars]
		warnings = append(warnings, fmt.Sprintf("document text exceeded %d characters and was truncated; some content was not analyzed", maxPromptChars))
		log.Printf("Document text truncated to %d characters before extraction", maxPromptChars)
	}

	response, err := e.completionClient.Complete(ctx, extractionSystemPrompt, combined)
	if err != nil {
		log.Printf("AI processing error: %v", err)
		return fallbackRecord(), append(warnings, fmt.Sprintf("AI processing error: %v", err))
	}

	fields, err := parseModelResponse(response)
	if err != nil {
		log.Printf("AI processing error: %v", err)
		return fallbackRecord(), append(warnings, fmt.Sprintf("AI processing error: %v", err))
	}

	// Base fields go through normalization; the derived fields are
	// recomputed here and the model's versions discarded.
	revenue := utils.CleanNumericValue(fields["total_revenue"])
	expenses := utils.CleanNumericValue(fields["total_expenses"])
	depreciation := utils.CleanNumericValue(fields["depreciation"])
	deductions := utils.CleanNumericValue(fields["deductions"])

	netTaxable := revenue - expenses - depreciation - deductions
	finalTax := utils.CalculateCorporateTax(netTaxable)

	return &dto.FinancialRecord{
		CompanyName:      fields["company_name"],
		Country:          fields["country"],
		TotalRevenue:     roundAmount(revenue),
		TotalExpenses:    roundAmount(expenses),
		Depreciation:     roundAmount(depreciation),
		Deductions:       roundAmount(deductions),
		NetTaxableIncome: roundAmount(netTaxable),
		FinalTaxOwed:     roundAmount(finalTax),
	}, warnings
}

// parseModelResponse strips an optional code fence and decodes the JSON
// object into string fields. Numeric JSON values are accepted as well;
// the model does not always follow the string_number instruction.
func parseModelResponse(response string) (map[string]string, error) {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(codeFencePattern.ReplaceAllString(cleaned, ""))
	}

	decoder := json.NewDecoder(strings.NewReader(cleaned))
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		}
	}
	return fields, nil
}

func fallbackRecord() *dto.FinancialRecord {
	return &dto.FinancialRecord{}
}

func roundAmount(amount float64) int64 {
	return int64(math.Round(amount))
}
