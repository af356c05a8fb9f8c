package embedding

import (
	"context"
	"crypto/md5"
	"math"

	"github.com/paperatlas/paperatlas/internal/keywords"
)

// HashModelName identifies vectors produced by the deterministic fallback.
const HashModelName = "hash-projection"

// HashProvider generates deterministic embeddings without any external
// service. Each distinct token is hashed to a bin and its log-scaled count
// accumulated there; hash collisions accumulate additively, which acts as a
// cheap random projection. The result is L2-normalized unless all bins are
// zero.
type HashProvider struct {
	dimensions int
}

// NewHashProvider creates a hash-based embedding provider with the given
// vector dimensions.
func NewHashProvider(dimensions int) *HashProvider {
	return &HashProvider{dimensions: dimensions}
}

// Embed generates a deterministic embedding for the given text. It never
// fails; the context is accepted to satisfy Provider.
func (p *HashProvider) Embed(_ context.Context, text string) (Embedding, error) {
	counts := make(map[string]int)
	for _, tok := range keywords.Tokenize(text) {
		counts[tok]++
	}

	vec := make([]float32, p.dimensions)
	for tok, count := range counts {
		vec[hashBin(tok, p.dimensions)] += float32(math.Log1p(float64(count)))
	}

	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq > 0 {
		inv := float32(1.0 / math.Sqrt(sumSq))
		for i := range vec {
			vec[i] *= inv
		}
	}

	return Embedding{Vector: vec}, nil
}

// ModelName returns the name of the fallback model.
func (p *HashProvider) ModelName() string {
	return HashModelName
}

// Dimensions returns the vector dimensions.
func (p *HashProvider) Dimensions() int {
	return p.dimensions
}

// hashBin maps a token to a bin index in [0, dim) by reducing its MD5 digest
// modulo dim. The digest is folded byte by byte, which is equivalent to
// taking the full 128-bit value mod dim.
func hashBin(token string, dim int) int {
	sum := md5.Sum([]byte(token))
	val := 0
	for _, b := range sum {
		val = (val*256 + int(b)) % dim
	}
	return val
}
