// Package label names paper clusters, preferring an LLM summary with a
// keyword-based fallback.
package label

import (
	"context"
	"strings"

	"github.com/paperatlas/paperatlas/internal/keywords"
)

const (
	// DefaultLabel is used when neither the summarizer nor the keyword
	// fallback produces anything.
	DefaultLabel = "General Research"

	// MaxMembers caps how many cluster members are shown to the summarizer.
	MaxMembers = 5

	fallbackKeywordCount = 3
)

// Member is one paper presented to the summarizer.
type Member struct {
	Title    string
	Abstract string
}

// Summarizer produces a short topic label for a group of papers.
type Summarizer interface {
	ClusterLabel(ctx context.Context, members []Member) (string, error)
}

// Labeler names clusters. A nil summarizer is allowed and simply forces the
// keyword fallback.
type Labeler struct {
	summarizer Summarizer
}

// NewLabeler creates a Labeler backed by the given summarizer.
func NewLabeler(s Summarizer) *Labeler {
	return &Labeler{summarizer: s}
}

// Label names a cluster from its members and pre-extracted keywords. The
// summarizer sees at most MaxMembers members; any summarizer failure falls
// back to joining the top keywords, and an empty keyword list yields
// DefaultLabel. Label never fails.
func (l *Labeler) Label(ctx context.Context, members []Member, kws []string) string {
	if l.summarizer != nil && len(members) > 0 {
		sample := members
		if len(sample) > MaxMembers {
			sample = sample[:MaxMembers]
		}
		if name, err := l.summarizer.ClusterLabel(ctx, sample); err == nil {
			if cleaned := CleanLabel(name); cleaned != "" {
				return cleaned
			}
		}
	}
	return KeywordLabel(kws)
}

// KeywordLabel joins the top keywords into a readable label.
func KeywordLabel(kws []string) string {
	if len(kws) == 0 {
		return DefaultLabel
	}
	n := fallbackKeywordCount
	if len(kws) < n {
		n = len(kws)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = keywords.Capitalize(kws[i])
	}
	return strings.Join(parts, " & ")
}

// CleanLabel strips model response decoration: code fences, surrounding
// quotes, and anything past the first line.
func CleanLabel(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.Index(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
