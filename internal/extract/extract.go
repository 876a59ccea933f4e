package extract

import (
	"bytes"
	"regexp"
	"strings"

	"careerlens/internal/errors"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MinTextLength is the shortest extraction that still counts as a
// readable resume. Shorter output usually means a scanned or image-only
// document.
const MinTextLength = 100

// Supported MIME types
const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// ExtractText pulls plain text out of an uploaded resume document.
// Unknown MIME types fail with UNSUPPORTED_FORMAT; documents that yield
// too little text (scans, empty files) fail with EXTRACTION_FAILED.
func ExtractText(data []byte, mimeType string) (string, error) {
	var text string
	var err error

	switch normalizeMimeType(mimeType) {
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOC:
		// No parser for the legacy OLE format. Files uploaded with this
		// MIME type are often DOCX in disguise, so try the OOXML reader;
		// a true legacy binary fails as an extraction error below.
		text, err = extractDOCX(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	case MimeText:
		text = string(data)
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			"Unsupported document format: "+mimeType, nil).
			WithContext("mime_type", mimeType)
	}

	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Failed to extract text from document", err).
			WithContext("mime_type", mimeType)
	}

	text = strings.TrimSpace(text)
	if len(text) < MinTextLength {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"Document yielded too little text to analyze", nil).
			WithContext("extracted_length", len(text)).
			WithContext("mime_type", mimeType)
	}

	return text, nil
}

// normalizeMimeType strips parameters like "; charset=utf-8"
func normalizeMimeType(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, the length gate catches empty results
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	content := doc.Editable().GetContent()

	// GetContent returns WordprocessingML: turn paragraph boundaries into
	// newlines, then strip the remaining tags.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTagPattern.ReplaceAllString(content, "")
	return content, nil
}
