package extract

import (
	"strings"
	"testing"

	appErrors "careerlens/internal/errors"
)

func TestExtractTextPlain(t *testing.T) {
	resume := strings.Repeat("Senior Go engineer with distributed systems experience. ", 5)

	got, err := ExtractText([]byte(resume), "text/plain")
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if got != strings.TrimSpace(resume) {
		t.Errorf("ExtractText() trimmed mismatch")
	}
}

func TestExtractTextMimeParameters(t *testing.T) {
	resume := strings.Repeat("Platform engineer. Kubernetes, Terraform, Go, AWS. ", 5)

	_, err := ExtractText([]byte(resume), "text/plain; charset=utf-8")
	if err != nil {
		t.Errorf("ExtractText() with charset parameter error = %v", err)
	}
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	_, err := ExtractText([]byte("data"), "image/png")
	if appErrors.CodeOf(err) != appErrors.ErrCodeUnsupportedFormat {
		t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeUnsupportedFormat)
	}
}

func TestExtractTextTooShort(t *testing.T) {
	_, err := ExtractText([]byte("too short to be a resume"), "text/plain")
	if appErrors.CodeOf(err) != appErrors.ErrCodeExtractionFailed {
		t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeExtractionFailed)
	}
}

func TestExtractTextLegacyDoc(t *testing.T) {
	// An OLE compound-file header: a recognized word-processor format
	// that the OOXML reader cannot parse. Must fail as an extraction
	// error, not as an unsupported format.
	ole := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

	_, err := ExtractText(ole, "application/msword")
	if appErrors.CodeOf(err) != appErrors.ErrCodeExtractionFailed {
		t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeExtractionFailed)
	}
}

func TestExtractTextCorruptPDF(t *testing.T) {
	_, err := ExtractText([]byte("not really a pdf"), "application/pdf")
	if appErrors.CodeOf(err) != appErrors.ErrCodeExtractionFailed {
		t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeExtractionFailed)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"application/pdf", "application/pdf"},
		{"Application/PDF", "application/pdf"},
		{"text/plain; charset=utf-8", "text/plain"},
		{"  text/plain ", "text/plain"},
	}

	for _, tt := range tests {
		if got := normalizeMimeType(tt.in); got != tt.want {
			t.Errorf("normalizeMimeType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
