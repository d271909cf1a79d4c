package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxscope/corporate-tax-analyzer/dto"
	"github.com/taxscope/corporate-tax-analyzer/service"
)

type stubCompletionClient struct {
	response string
}

func (s *stubCompletionClient) Complete(_ context.Context, _, _ string) (string, error) {
	return s.response, nil
}

func setupRouter(modelResponse string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	processor := service.NewDocumentProcessor(nil)
	extractor := service.NewFinancialExtractor(&stubCompletionClient{response: modelResponse})
	taxService := service.NewTaxService(processor, extractor)
	taxHandler := NewTaxHandler(taxService, 10*1024*1024)

	router := gin.New()
	router.POST("/api/v1/tax/analyze", taxHandler.AnalyzeDocument)
	router.POST("/api/v1/tax/export", taxHandler.ExportReport)
	return router
}

func uploadRequest(t *testing.T, url, filename string, fileData []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(fileData)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalyzeDocumentCSV(t *testing.T) {
	router := setupRouter(`{"company_name":"Acme B.V.","country":"Netherlands","total_revenue":"500000","total_expenses":"150000","depreciation":"0","deductions":"0","net_taxable_income":"0","final_tax_owed":"0"}`)

	csvData := []byte("Line Item,Amount\nRevenue,500000\nExpenses,150000\n")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "/api/v1/tax/analyze", "statement.csv", csvData))

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaxAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.NotNil(t, response.Record)
	assert.Equal(t, "Acme B.V.", response.Record.CompanyName)
	assert.Equal(t, int64(350000), response.Record.NetTaxableIncome)
	assert.Equal(t, int64(76700), response.Record.FinalTaxOwed)
	assert.Empty(t, response.LossNotice)
	assert.NotEmpty(t, response.ProcessedAt)

	require.Len(t, response.Results, 8)
	assert.Equal(t, "Final Tax Owed", response.Results[7].Field)
	assert.Equal(t, "€76,700", response.Results[7].Value)
}

func TestAnalyzeDocumentLossNotice(t *testing.T) {
	router := setupRouter(`{"company_name":"Startup B.V.","country":"Netherlands","total_revenue":"50000","total_expenses":"80000","depreciation":"0","deductions":"0"}`)

	csvData := []byte("Line Item,Amount\nRevenue,50000\nExpenses,80000\n")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "/api/v1/tax/analyze", "statement.csv", csvData))

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaxAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, int64(-30000), response.Record.NetTaxableIncome)
	assert.Equal(t, int64(0), response.Record.FinalTaxOwed)
	assert.Contains(t, response.LossNotice, "net loss of €30,000")
}

func TestAnalyzeDocumentDegradesOnBadModelOutput(t *testing.T) {
	router := setupRouter("sorry, no JSON today")

	csvData := []byte("Line Item,Amount\nRevenue,500000\n")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "/api/v1/tax/analyze", "statement.csv", csvData))

	// Extraction failure is not an HTTP error; the fallback record comes
	// back with a visible warning.
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TaxAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, &dto.FinancialRecord{}, response.Record)
	require.NotEmpty(t, response.Warnings)
	assert.Contains(t, response.Warnings[0], "AI processing error")
}

func TestAnalyzeDocumentRejectsUnsupportedType(t *testing.T) {
	router := setupRouter(`{}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "/api/v1/tax/analyze", "statement.docx", []byte("data")))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

func TestAnalyzeDocumentRequiresFile(t *testing.T) {
	router := setupRouter(`{}`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tax/analyze", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportReportDownload(t *testing.T) {
	router := setupRouter(`{"company_name":"Acme B.V.","country":"Netherlands","total_revenue":"500000","total_expenses":"150000","depreciation":"0","deductions":"0"}`)

	csvData := []byte("Line Item,Amount\nRevenue,500000\nExpenses,150000\n")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "/api/v1/tax/export", "statement.csv", csvData))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="tax_analysis_`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.json"`)

	var report dto.TaxReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.NotNil(t, report.AnalysisResults)
	assert.Equal(t, int64(350000), report.AnalysisResults.NetTaxableIncome)
	assert.Equal(t, int64(76700), report.AnalysisResults.FinalTaxOwed)
	assert.NotEmpty(t, report.Timestamp)
}
