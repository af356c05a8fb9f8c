// Package keywords extracts salient terms from paper titles and abstracts.
// Its tokenizer is shared with the hash-based fallback embedder so that
// keyword extraction and fallback embedding see identical token streams.
package keywords

import (
	"sort"
	"strings"
)

const (
	// MinTokenLength is the minimum length of an alphabetic run to count
	// as a token. Shorter runs are almost always noise ("of", "to", "a").
	MinTokenLength = 3

	// MaxKeywords is the number of keywords returned by Extract.
	MaxKeywords = 5

	// candidatePool is how many of the most frequent tokens are considered
	// before the breadth filter is applied.
	candidatePool = 20
)

// Text is a title/abstract pair fed into keyword extraction.
type Text struct {
	Title    string
	Abstract string
}

// Tokenize splits text into lowercase alphabetic runs of length >= MinTokenLength.
func Tokenize(text string) []string {
	var tokens []string
	var run []rune

	flush := func() {
		if len(run) >= MinTokenLength {
			tokens = append(tokens, string(run))
		}
		run = run[:0]
	}

	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// Extract returns up to MaxKeywords terms that are frequent across the whole
// set of texts, not just within one document. A term qualifies when it is
// among the candidatePool most frequent non-stopword tokens and its total
// count is at least max(1, len(texts)/2).
func Extract(texts []Text) []string {
	counts := make(map[string]int)
	for _, t := range texts {
		for _, tok := range Tokenize(t.Title + " " + t.Abstract) {
			if stopwords[tok] {
				continue
			}
			counts[tok]++
		}
	}

	type freq struct {
		word  string
		count int
	}
	ranked := make([]freq, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, freq{w, c})
	}
	// Ties broken alphabetically so extraction is deterministic.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	if len(ranked) > candidatePool {
		ranked = ranked[:candidatePool]
	}

	minCount := len(texts) / 2
	if minCount < 1 {
		minCount = 1
	}

	var out []string
	for _, f := range ranked {
		if f.count < minCount {
			continue
		}
		out = append(out, f.word)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

// Capitalize uppercases the first letter of a keyword for display.
func Capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// stopwords contains common English words plus academic-writing boilerplate
// that would otherwise dominate every cluster label.
var stopwords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "with": true,
	"from": true, "was": true, "are": true, "were": true, "been": true,
	"have": true, "has": true, "had": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "shall": true, "can": true, "need": true,
	"dare": true, "ought": true, "this": true, "that": true, "these": true,
	"those": true, "you": true, "she": true, "what": true, "which": true,
	"who": true, "whom": true, "their": true, "its": true, "our": true,
	"your": true, "his": true, "her": true, "more": true, "most": true,
	"other": true, "some": true, "such": true, "not": true, "only": true,
	"same": true, "than": true, "too": true, "very": true, "just": true,
	"also": true, "now": true, "here": true, "there": true, "when": true,
	"where": true, "why": true, "how": true, "all": true, "each": true,
	"every": true, "both": true, "few": true, "many": true, "much": true,
	"any": true, "between": true, "into": true, "through": true,
	"during": true, "before": true, "after": true, "above": true,
	"below": true, "down": true, "out": true, "off": true, "over": true,
	"under": true, "again": true, "further": true, "then": true,
	"once": true, "they": true,

	// Academic boilerplate
	"paper": true, "study": true, "research": true, "results": true,
	"method": true, "methods": true, "approach": true, "using": true,
	"based": true, "new": true, "show": true, "shows": true, "shown": true,
	"present": true, "presents": true, "proposed": true, "propose": true,
	"use": true, "used": true, "however": true, "although": true,
	"while": true, "since": true, "because": true, "therefore": true,
	"thus": true, "hence": true, "moreover": true, "furthermore": true,
	"nevertheless": true, "nonetheless": true, "work": true, "works": true,
	"article": true, "review": true, "introduction": true,
	"conclusion": true, "abstract": true,
}
