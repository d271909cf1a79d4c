package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/taxscope/corporate-tax-analyzer/dto"
	"github.com/taxscope/corporate-tax-analyzer/utils"
)

// TaxService runs the full pipeline for one uploaded document: content
// extraction, AI field extraction with local reconciliation, and
// presentation assembly. Nothing is persisted between requests.
type TaxService struct {
	processor DocumentProcessor
	extractor *FinancialExtractor
}

func NewTaxService(processor DocumentProcessor, extractor *FinancialExtractor) *TaxService {
	return &TaxService{
		processor: processor,
		extractor: extractor,
	}
}

// AnalyzeDocument processes one uploaded financial document end to end.
func (s *TaxService) AnalyzeDocument(ctx context.Context, req *dto.TaxAnalysisRequest) (*dto.TaxAnalysisResponse, error) {
	file, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content, err := s.processor.ExtractContent(fileBytes, req.DocType())
	if err != nil {
		return nil, fmt.Errorf("failed to extract document content: %w", err)
	}

	record, warnings := s.extractor.Extract(ctx, content)

	response := &dto.TaxAnalysisResponse{
		Record:      record,
		Results:     utils.ResultsTable(record),
		Warnings:    warnings,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}

	if record.NetTaxableIncome < 0 {
		response.LossNotice = lossNotice(record)
	}

	log.Printf("Analysis complete for %s: net taxable income %s, tax owed %s",
		req.File.Filename,
		utils.FormatCurrency(record.NetTaxableIncome),
		utils.FormatCurrency(record.FinalTaxOwed))

	return response, nil
}

// ExportReport runs the same pipeline and wraps the record in a
// timestamped report, returning the report and its download filename.
// There is no stored state to export from; one upload produces one report.
func (s *TaxService) ExportReport(ctx context.Context, req *dto.TaxAnalysisRequest) (*dto.TaxReport, string, error) {
	response, err := s.AnalyzeDocument(ctx, req)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	report := &dto.TaxReport{
		AnalysisResults: response.Record,
		Timestamp:       now.Format("2006-01-02 15:04:05"),
	}
	filename := fmt.Sprintf("tax_analysis_%s.json", now.Format("20060102_150405"))

	return report, filename, nil
}

// lossNotice explains a negative taxable income in terms of the four
// base fields it was recomputed from.
func lossNotice(record *dto.FinancialRecord) string {
	return fmt.Sprintf(
		"This company has a net loss of %s for the period. Calculation: %s (Revenue) - %s (Expenses) - %s (Depreciation) - %s (Deductions) = %s. No corporate tax is owed on losses; the loss can typically be carried forward to offset future profits.",
		utils.FormatCurrency(-record.NetTaxableIncome),
		utils.FormatCurrency(record.TotalRevenue),
		utils.FormatCurrency(record.TotalExpenses),
		utils.FormatCurrency(record.Depreciation),
		utils.FormatCurrency(record.Deductions),
		utils.FormatCurrency(record.NetTaxableIncome),
	)
}
