// Package paper defines the core domain types for papers and projects.
package paper

import "strings"

// EmbeddingDimensions is the fixed vector dimension for all embeddings.
// Matches the all-MiniLM-L6-v2 sentence-transformer output.
const EmbeddingDimensions = 384

// Paper represents a research-paper record.
type Paper struct {
	ID        int64 `json:"id"`
	ProjectID int64 `json:"project_id"`

	// Metadata
	Title    string `json:"title"`
	Abstract string `json:"abstract,omitempty"`
	Authors  string `json:"authors,omitempty"` // Comma-separated display string
	Year     int    `json:"year,omitempty"`    // 0 if unknown

	// External identifiers
	DOI     string `json:"doi,omitempty"`
	ArXivID string `json:"arxiv_id,omitempty"`

	// Computed fields, owned by the clustering pipeline.
	// Embedding is computed once and persisted; ClusterID is overwritten
	// on every clustering run.
	Embedding []float32 `json:"embedding,omitempty"`
	ClusterID *int      `json:"cluster_id,omitempty"`
}

// EmbeddingText returns the text used to embed this paper: title and
// abstract joined with a space, trimmed.
func (p *Paper) EmbeddingText() string {
	return strings.TrimSpace(strings.TrimSpace(p.Title) + " " + strings.TrimSpace(p.Abstract))
}

// HasEmbedding reports whether the paper carries a stored embedding.
func (p *Paper) HasEmbedding() bool {
	return len(p.Embedding) > 0
}

// Project groups papers under an owner.
type Project struct {
	ID          int64  `json:"id"`
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"created_at"` // Unix timestamp
}
