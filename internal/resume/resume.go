// Package resume extracts plain text from resume files. Only plaintext and
// PDF documents are supported.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for file extensions other than .txt and
// .pdf. Callers distinguish it from a missing file via os.IsNotExist on the
// wrapped error.
var ErrUnsupportedFormat = errors.New("unsupported resume format")

// ExtractText reads the resume at path and returns its plain text.
func ExtractText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("resume file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("resume path %q is a directory", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return extractTXT(path)
	case ".pdf":
		return extractPDF(path)
	default:
		return "", fmt.Errorf("%w: %s (use PDF or TXT)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func extractTXT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading resume: %w", err)
	}
	return string(data), nil
}

func extractPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf resume: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	return buf.String(), nil
}

// NormalizeText collapses runs of whitespace into single spaces.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
