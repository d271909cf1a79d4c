package dto

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrNoFile              = errors.New("no file provided")
	ErrUnsupportedDocument = errors.New("unsupported file type: expected .pdf or .csv")
)

// TaxAnalysisRequest represents one uploaded financial document.
type TaxAnalysisRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

// DocType maps the upload's extension to an extraction path.
func (r *TaxAnalysisRequest) DocType() DocumentType {
	switch strings.ToLower(filepath.Ext(r.File.Filename)) {
	case ".pdf":
		return DocTypePDF
	case ".csv":
		return DocTypeCSV
	}
	return ""
}

// Validate performs basic validation on the request.
func (r *TaxAnalysisRequest) Validate() error {
	if r.File == nil {
		return ErrNoFile
	}
	if r.DocType() == "" {
		return ErrUnsupportedDocument
	}
	return nil
}
