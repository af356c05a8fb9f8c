// Package cluster partitions embedding vectors into topical groups with an
// automatically chosen cluster count.
package cluster

import "math"

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
// Mismatched lengths or zero vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denominator := math.Sqrt(normA) * math.Sqrt(normB)
	if denominator == 0 {
		return 0
	}

	return dot / denominator
}

// MeanPairwiseCosine returns the mean cosine similarity over all unordered
// pairs of vectors, excluding self-pairs. Fewer than two vectors yield 0.
func MeanPairwiseCosine(vecs [][]float32) float64 {
	n := len(vecs)
	if n < 2 {
		return 0
	}

	var sum float64
	var pairs int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += CosineSimilarity(vecs[i], vecs[j])
			pairs++
		}
	}
	return sum / float64(pairs)
}

// squaredDistance returns the squared Euclidean distance between a vector
// and a float64 centroid.
func squaredDistance(v []float32, c []float64) float64 {
	var sum float64
	for i := range v {
		d := float64(v[i]) - c[i]
		sum += d * d
	}
	return sum
}

// euclideanDistance returns the Euclidean distance between two vectors.
func euclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
