package utils

import "testing"

func TestMimeTypeForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"resume.pdf", "application/pdf"},
		{"resume.doc", "application/msword"},
		{"resume.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"resume.txt", "text/plain"},
		{"RESUME.PDF", "application/pdf"},
	}

	for _, tt := range tests {
		if got := MimeTypeForFile(tt.filename); got != tt.want {
			t.Errorf("MimeTypeForFile(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestIsDocumentFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.pdf", true},
		{"resume.doc", true},
		{"resume.docx", true},
		{"resume.txt", false},
		{"resume.md", false},
	}

	for _, tt := range tests {
		if got := IsDocumentFile(tt.filename); got != tt.want {
			t.Errorf("IsDocumentFile(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}
