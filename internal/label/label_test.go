package label

import (
	"context"
	"errors"
	"testing"
)

type fixedSummarizer struct {
	label string
	err   error
	seen  []Member
}

func (s *fixedSummarizer) ClusterLabel(_ context.Context, members []Member) (string, error) {
	s.seen = members
	return s.label, s.err
}

func TestLabeler_UsesSummarizer(t *testing.T) {
	s := &fixedSummarizer{label: "Graph Neural Networks"}
	l := NewLabeler(s)

	got := l.Label(context.Background(), []Member{{Title: "A"}}, []string{"graph", "neural"})
	if got != "Graph Neural Networks" {
		t.Errorf("Label = %q, want summarizer output", got)
	}
}

func TestLabeler_CapsMembers(t *testing.T) {
	s := &fixedSummarizer{label: "Something"}
	l := NewLabeler(s)

	members := make([]Member, 9)
	for i := range members {
		members[i] = Member{Title: "paper"}
	}
	l.Label(context.Background(), members, nil)
	if len(s.seen) != MaxMembers {
		t.Errorf("summarizer saw %d members, want %d", len(s.seen), MaxMembers)
	}
}

func TestLabeler_FallsBackOnError(t *testing.T) {
	s := &fixedSummarizer{err: errors.New("rate limited")}
	l := NewLabeler(s)

	got := l.Label(context.Background(), []Member{{Title: "A"}}, []string{"transformer", "attention", "language", "model"})
	if got != "Transformer & Attention & Language" {
		t.Errorf("Label = %q, want keyword fallback", got)
	}
}

func TestLabeler_NilSummarizer(t *testing.T) {
	l := NewLabeler(nil)

	got := l.Label(context.Background(), []Member{{Title: "A"}}, []string{"protein"})
	if got != "Protein" {
		t.Errorf("Label = %q, want %q", got, "Protein")
	}
}

func TestKeywordLabel(t *testing.T) {
	tests := []struct {
		name string
		kws  []string
		want string
	}{
		{"no keywords", nil, DefaultLabel},
		{"one keyword", []string{"robotics"}, "Robotics"},
		{"two keywords", []string{"vision", "depth"}, "Vision & Depth"},
		{"caps at three", []string{"vision", "depth", "stereo", "lidar"}, "Vision & Depth & Stereo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeywordLabel(tt.kws); got != tt.want {
				t.Errorf("KeywordLabel(%v) = %q, want %q", tt.kws, got, tt.want)
			}
		})
	}
}

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Deep Learning Methods", "Deep Learning Methods"},
		{"double quoted", `"Deep Learning Methods"`, "Deep Learning Methods"},
		{"single quoted", "'Deep Learning Methods'", "Deep Learning Methods"},
		{"surrounding space", "  Deep Learning \n", "Deep Learning"},
		{"code fence", "```\nDeep Learning\n```", "Deep Learning"},
		{"multiline keeps first", "Deep Learning\nHere is why", "Deep Learning"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLabel(tt.input); got != tt.want {
				t.Errorf("CleanLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
