// Package extract pulls raw text out of uploaded documents.
package extract

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	ierrors "github.com/gcbaptista/go-ats-scanner/internal/errors"
)

// Supported MIME types.
const (
	MIMEPlainText = "text/plain"
	MIMEMarkdown  = "text/markdown"
	MIMEHTML      = "text/html"
	MIMEPDF       = "application/pdf"
	MIMEDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var extensionTypes = map[string]string{
	".txt":  MIMEPlainText,
	".text": MIMEPlainText,
	".md":   MIMEMarkdown,
	".htm":  MIMEHTML,
	".html": MIMEHTML,
	".pdf":  MIMEPDF,
	".docx": MIMEDocx,
}

// Extractor converts document bytes into text. The zero value is ready to use.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text content of data interpreted as mimeType.
// Parameters such as "; charset=utf-8" are ignored.
func (e *Extractor) Extract(mimeType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ierrors.ErrEmptyDocument
	}

	switch baseType(mimeType) {
	case MIMEPlainText, MIMEMarkdown:
		return string(data), nil
	case MIMEHTML:
		return extractHTMLText(bytes.NewReader(data))
	case MIMEPDF:
		return extractPDFText(data)
	case MIMEDocx:
		return extractDocxText(data)
	default:
		err := ierrors.NewUnsupportedDocumentError(mimeType)
		err.Supported = SupportedTypes()
		return "", err
	}
}

// SupportedTypes lists the MIME types Extract understands.
func SupportedTypes() []string {
	return []string{MIMEPlainText, MIMEMarkdown, MIMEHTML, MIMEPDF, MIMEDocx}
}

// DetectMIME guesses the MIME type from the filename extension, falling back to content sniffing.
func DetectMIME(filename string, data []byte) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return t
	}
	if len(data) == 0 {
		return MIMEPlainText
	}
	return baseType(http.DetectContentType(data))
}

func baseType(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return mediaType
}

// extractPDFText concatenates the plain text of every page in order.
// Pages that are null or yield no text are skipped.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			continue
		}
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return wordXMLText(doc.Editable().GetContent()), nil
}
