// Package fetch retrieves paper metadata from arXiv and Semantic Scholar.
package fetch

import (
	"errors"
	"regexp"
	"strings"
)

// Common errors returned by fetch clients.
var (
	// ErrNotFound indicates no paper matched the identifier.
	ErrNotFound = errors.New("paper not found")

	// ErrInvalidID indicates the identifier could not be parsed.
	ErrInvalidID = errors.New("invalid paper identifier")

	// ErrAPIError indicates an unexpected upstream response.
	ErrAPIError = errors.New("metadata API error")
)

// Metadata is the provider-independent description of a paper.
type Metadata struct {
	Title    string
	Abstract string
	Authors  string
	Year     int
	DOI      string
	ArXivID  string
}

var (
	arxivIDPattern = regexp.MustCompile(`(\d{4}\.\d{4,5})(v\d+)?`)
	doiPattern     = regexp.MustCompile(`10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+`)
)

// ExtractArxivID pulls a modern arXiv identifier out of a raw id, abs/pdf
// URL, or versioned reference. The version suffix is dropped.
func ExtractArxivID(s string) (string, bool) {
	m := arxivIDPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractDOI pulls a DOI out of a raw id or doi.org URL. Trailing
// punctuation that commonly rides along in citations is stripped.
func ExtractDOI(s string) (string, bool) {
	m := doiPattern.FindString(s)
	if m == "" {
		return "", false
	}
	return strings.TrimRight(m, ".;)"), true
}

// collapseWhitespace flattens newlines and runs of spaces, which arXiv
// feeds are full of.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
