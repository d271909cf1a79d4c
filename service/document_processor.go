package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/taxscope/corporate-tax-analyzer/client"
	"github.com/taxscope/corporate-tax-analyzer/dto"
)

// DocumentProcessor turns an uploaded document into its raw text and a
// textual rendering of its tables.
type DocumentProcessor interface {
	ExtractContent(data []byte, docType dto.DocumentType) (*dto.DocumentContent, error)
}

type documentProcessor struct {
	tesseractClient *client.TesseractClient
}

func NewDocumentProcessor(tesseractClient *client.TesseractClient) DocumentProcessor {
	return &documentProcessor{
		tesseractClient: tesseractClient,
	}
}

func (p *documentProcessor) ExtractContent(data []byte, docType dto.DocumentType) (*dto.DocumentContent, error) {
	switch docType {
	case dto.DocTypePDF:
		return p.extractPDF(data)
	case dto.DocTypeCSV:
		return p.extractCSV(data)
	}
	return nil, fmt.Errorf("unknown document type: %s", docType)
}

// extractPDF pulls the text layer and a table rendering out of a PDF.
// Scanned statements with no usable text layer fall back to OCR on the
// embedded page images.
func (p *documentProcessor) extractPDF(data []byte) (*dto.DocumentContent, error) {
	if err := api.Validate(bytes.NewReader(data), model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	var tablesBuilder strings.Builder

	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, _ := page.GetTextByRow()
		var pageHasTable bool
		for _, row := range rows {
			var words []string
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			if len(words) == 0 {
				continue
			}

			textBuilder.WriteString(strings.Join(words, " "))
			textBuilder.WriteString("\n")

			// Rows with multiple text runs are column-aligned line items;
			// render those separately so tabular amounts survive intact.
			if len(words) >= 2 {
				if !pageHasTable {
					fmt.Fprintf(&tablesBuilder, "\nTable (Page %d):\n", pageIndex)
					pageHasTable = true
				}
				tablesBuilder.WriteString(strings.Join(words, " | "))
				tablesBuilder.WriteString("\n")
			}
		}
	}

	content := &dto.DocumentContent{
		RawText:    textBuilder.String(),
		TablesText: tablesBuilder.String(),
	}

	// Weak text layer usually means a scanned statement.
	if evaluateTextQuality(content.RawText) < 50 {
		log.Println("PDF text layer is weak, attempting OCR on embedded page images")
		if ocrText := p.ocrPDFImages(data); len(strings.TrimSpace(ocrText)) > 20 {
			content.RawText = ocrText
		}
	}

	if len(strings.TrimSpace(content.RawText)) == 0 && len(strings.TrimSpace(content.TablesText)) == 0 {
		return nil, fmt.Errorf("no text could be extracted from the document")
	}

	return content, nil
}

// extractCSV renders a CSV file as plain text plus one aligned table.
// Malformed rows are skipped, never fatal.
func (p *documentProcessor) extractCSV(data []byte) (*dto.DocumentContent, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Warning: Failed to read CSV record: %v", err)
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no rows could be read from the CSV file")
	}

	var textBuilder strings.Builder
	for _, record := range records {
		textBuilder.WriteString(strings.Join(record, ", "))
		textBuilder.WriteString("\n")
	}

	return &dto.DocumentContent{
		RawText:    textBuilder.String(),
		TablesText: "\nTable (CSV):\n" + renderAlignedTable(records),
	}, nil
}

// renderAlignedTable pads each column to its widest cell so the LLM sees
// the same column structure a human would.
func renderAlignedTable(records [][]string) string {
	var widths []int
	for _, record := range records {
		for i, cell := range record {
			if i >= len(widths) {
				widths = append(widths, len(cell))
			} else if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for _, record := range records {
		for i, cell := range record {
			b.WriteString(cell)
			if i < len(record)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ocrPDFImages extracts the page images of a scanned PDF and OCRs each
// one, returning the combined text. Failures degrade to an empty string;
// the caller keeps whatever the text layer produced.
func (p *documentProcessor) ocrPDFImages(data []byte) string {
	tempDir, err := os.MkdirTemp("", "pdf_images")
	if err != nil {
		log.Printf("Failed to create temp dir for PDF images: %v", err)
		return ""
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "doc-*.pdf")
	if err != nil {
		log.Printf("Failed to create temp PDF file: %v", err)
		return ""
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		log.Printf("Failed to write temp PDF file: %v", err)
		return ""
	}
	tempFile.Close()

	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, model.NewDefaultConfiguration()); err != nil {
		log.Printf("Failed to extract images from PDF: %v", err)
		return ""
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		log.Printf("Failed to read temp image dir: %v", err)
		return ""
	}

	var combined strings.Builder
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgPath := filepath.Join(tempDir, file.Name())
		if !isDecodableImage(imgPath) {
			continue
		}

		pageText, _, err := p.tesseractClient.ExtractTextAndQuality(imgPath)
		if err != nil {
			log.Printf("OCR failed for page image %s: %v", file.Name(), err)
			continue
		}

		combined.WriteString(pageText)
		combined.WriteString("\n")
	}

	return combined.String()
}

// isDecodableImage filters out non-image artifacts pdfcpu may emit.
func isDecodableImage(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, _, err = image.DecodeConfig(f)
	return err == nil
}

// evaluateTextQuality scores extracted text from 0-100 on length and the
// presence of financial-statement vocabulary.
func evaluateTextQuality(text string) float64 {
	if text == "" {
		return 0.0
	}

	score := 0.0

	textLen := len(strings.TrimSpace(text))
	if textLen > 500 {
		score += 40.0
	} else if textLen > 100 {
		score += 20.0
	} else if textLen > 20 {
		score += 10.0
	}

	keywords := []string{
		"revenue", "expenses", "income", "tax", "total",
		"depreciation", "balance", "omzet", "kosten",
	}

	textLower := strings.ToLower(text)
	keywordCount := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			keywordCount++
		}
	}

	score += float64(keywordCount) * 6.67

	if score > 100.0 {
		score = 100.0
	}

	return score
}
