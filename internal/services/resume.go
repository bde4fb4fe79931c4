package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ResumeParser extracts plain text from an uploaded resume. It never
// returns an error to callers: extraction failure yields an empty string
// and the interview proceeds without resume context.
type ResumeParser interface {
	ExtractText(filePath string) string
}

type resumeParser struct{}

func NewResumeParser() ResumeParser {
	return &resumeParser{}
}

// ExtractText implements ResumeParser. PDF and plain-text files are
// supported.
func (p *resumeParser) ExtractText(filePath string) string {
	var text string
	var err error

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		text, err = extractPDFText(filePath)
	case ".txt":
		var data []byte
		data, err = os.ReadFile(filePath)
		text = string(data)
	default:
		err = fmt.Errorf("unsupported resume format: %s", filepath.Ext(filePath))
	}

	if err != nil {
		log.Printf("⚠️ Resume text extraction failed for %s: %v\n", filePath, err)
		return ""
	}

	return CleanText(text)
}

func extractPDFText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// CleanText trims each line and collapses runs of blank lines into a
// single paragraph break.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	var cleaned []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = true
			continue
		}
		if blank && len(cleaned) > 0 {
			cleaned = append(cleaned, "")
		}
		blank = false
		cleaned = append(cleaned, line)
	}

	return strings.Join(cleaned, "\n")
}
