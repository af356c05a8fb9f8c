package embedding

import (
	"context"
	"strings"
)

// MinTextLength is the minimum trimmed text length to embed. Shorter text
// lacks the content for a meaningful vector and yields no embedding at all.
const MinTextLength = 10

// Embedder produces embeddings with best-effort semantics: it tries the
// remote provider when one is configured and silently degrades to the
// deterministic hash projection on any remote failure. It never returns an
// error; text that is too short yields ok=false.
type Embedder struct {
	remote   Provider // nil when no service is configured
	fallback *HashProvider
}

// NewEmbedder creates an Embedder. remote may be nil, in which case every
// embedding comes from the hash fallback.
func NewEmbedder(remote Provider, dimensions int) *Embedder {
	return &Embedder{
		remote:   remote,
		fallback: NewHashProvider(dimensions),
	}
}

// Dimensions returns the vector dimensions produced by this embedder.
func (e *Embedder) Dimensions() int {
	return e.fallback.Dimensions()
}

// Embed returns a vector for the given text, or ok=false when the trimmed
// text is shorter than MinTextLength. Remote failures are absorbed by the
// fallback; the only way to get ok=false is insufficient input.
func (e *Embedder) Embed(ctx context.Context, text string) (vec []float32, ok bool) {
	if len(strings.TrimSpace(text)) < MinTextLength {
		return nil, false
	}

	if e.remote != nil {
		if emb, err := e.remote.Embed(ctx, text); err == nil {
			return emb.Vector, true
		}
	}

	emb, _ := e.fallback.Embed(ctx, text)
	return emb.Vector, true
}
