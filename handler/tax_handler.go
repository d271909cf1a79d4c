package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxscope/corporate-tax-analyzer/dto"
	"github.com/taxscope/corporate-tax-analyzer/service"
)

type TaxHandler struct {
	taxService  *service.TaxService
	maxFileSize int64
}

func NewTaxHandler(taxService *service.TaxService, maxFileSize int64) *TaxHandler {
	return &TaxHandler{
		taxService:  taxService,
		maxFileSize: maxFileSize,
	}
}

// AnalyzeDocument handles the POST /tax/analyze endpoint
func (h *TaxHandler) AnalyzeDocument(c *gin.Context) {
	log.Println("Received tax analysis request")

	request, err := h.bindRequest(c)
	if err != nil {
		return // error response already sent
	}

	response, err := h.taxService.AnalyzeDocument(c.Request.Context(), request)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to analyze document", err)
		return
	}

	log.Println("Tax analysis completed successfully")
	c.JSON(http.StatusOK, response)
}

// ExportReport handles the POST /tax/export endpoint. It streams the
// analysis result as a downloadable timestamped JSON report.
func (h *TaxHandler) ExportReport(c *gin.Context) {
	log.Println("Received tax report export request")

	request, err := h.bindRequest(c)
	if err != nil {
		return
	}

	report, filename, err := h.taxService.ExportReport(c.Request.Context(), request)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to export report", err)
		return
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to serialize report", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/json", body)
}

// bindRequest extracts and validates the uploaded file. On failure it
// writes the error response itself and returns a non-nil error.
func (h *TaxHandler) bindRequest(c *gin.Context) (*dto.TaxAnalysisRequest, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided. Ensure the 'file' form field is used.", err)
		return nil, err
	}

	if fileHeader.Size > h.maxFileSize {
		err := fmt.Errorf("file too large: %d bytes (max %d)", fileHeader.Size, h.maxFileSize)
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return nil, err
	}

	request := &dto.TaxAnalysisRequest{File: fileHeader}
	if err := request.Validate(); err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, dto.ErrNoFile) && !errors.Is(err, dto.ErrUnsupportedDocument) {
			status = http.StatusInternalServerError
		}
		h.sendError(c, status, err.Error(), err)
		return nil, err
	}

	return request, nil
}

// sendError sends a structured error response
func (h *TaxHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "ANALYSIS_FAILED",
		Message: message,
		Code:    statusCode,
	})
}
