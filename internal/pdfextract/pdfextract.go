// Package pdfextract pulls paper metadata out of PDF files.
package pdfextract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/paperatlas/paperatlas/internal/fetch"
)

// maxPages limits extraction to the front matter, where the title,
// abstract, and identifiers live.
const maxPages = 2

// Result holds everything recovered from a PDF's front matter.
type Result struct {
	Title    string
	Abstract string
	DOI      string
	ArXivID  string
	Text     string
}

// Extract reads the first pages of a PDF and applies metadata heuristics.
func Extract(path string) (*Result, error) {
	text, err := readText(path, maxPages)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res := &Result{
		Title:    GuessTitle(text),
		Abstract: GuessAbstract(text),
		Text:     text,
	}
	if doi, ok := fetch.ExtractDOI(text); ok {
		res.DOI = doi
	}
	if id, ok := fetch.ExtractArxivID(text); ok {
		res.ArXivID = id
	}
	return res, nil
}

// readText extracts plain text from the first n pages.
func readText(path string, n int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if n > r.NumPage() {
		n = r.NumPage()
	}

	var b strings.Builder
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
