package pdfextract

import (
	"regexp"
	"strings"
)

const (
	minTitleLength = 10
	maxTitleLength = 300

	minAbstractLength = 100
	maxAbstractLength = 2000
)

var (
	emailPattern  = regexp.MustCompile(`\S+@\S+\.\S+`)
	hyphenBreak   = regexp.MustCompile(`(\w)-\s*\n\s*(\w)`)
	sectionBreaks = []string{"introduction", "1 introduction", "1. introduction", "keywords", "index terms"}
)

// GuessTitle returns the first substantial line of the front matter. Lines
// that look like headers, affiliations, or author blocks are skipped.
func GuessTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minTitleLength || len(line) > maxTitleLength {
			continue
		}
		if isBoilerplateLine(line) {
			continue
		}
		return collapse(line)
	}
	return ""
}

// GuessAbstract returns the text between an "Abstract" marker and the next
// section heading, cleaned up and bounded to a plausible length. An empty
// string means no abstract was found.
func GuessAbstract(text string) string {
	lower := strings.ToLower(text)
	start := strings.Index(lower, "abstract")
	if start < 0 {
		return ""
	}
	body := text[start+len("abstract"):]
	body = strings.TrimLeft(body, ":.-— \n\t")

	end := len(body)
	bodyLower := strings.ToLower(body)
	for _, marker := range sectionBreaks {
		if i := strings.Index(bodyLower, marker); i >= 0 && i < end {
			end = i
		}
	}
	body = body[:end]

	body = Dehyphenate(body)
	body = emailPattern.ReplaceAllString(body, "")
	body = collapse(body)

	if len(body) < minAbstractLength {
		return ""
	}
	if len(body) > maxAbstractLength {
		cut := strings.LastIndex(body[:maxAbstractLength], ". ")
		if cut < minAbstractLength {
			cut = maxAbstractLength
		} else {
			cut++ // keep the period
		}
		body = strings.TrimSpace(body[:cut])
	}
	return body
}

// Dehyphenate rejoins words split across line breaks.
func Dehyphenate(s string) string {
	return hyphenBreak.ReplaceAllString(s, "$1$2")
}

// isBoilerplateLine reports whether a line looks like front-matter noise
// rather than a title.
func isBoilerplateLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range []string{
		"university", "institute", "department", "laboratory",
		"proceedings", "preprint", "arxiv:", "copyright", "@",
		"vol.", "journal of", "conference on",
	} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
