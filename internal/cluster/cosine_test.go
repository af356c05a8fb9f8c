package cluster

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 0, 0},
			b:        []float32{1, 0, 0},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 0},
			b:        []float32{-1, 0},
			expected: -1.0,
		},
		{
			name:     "45 degrees",
			a:        []float32{1, 1},
			b:        []float32{1, 0},
			expected: 0.7071067811865475,
		},
		{
			name:     "empty vectors",
			a:        []float32{},
			b:        []float32{},
			expected: 0.0,
		},
		{
			name:     "different lengths",
			a:        []float32{1, 0},
			b:        []float32{1, 0, 0},
			expected: 0.0,
		},
		{
			name:     "zero vector",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 0, 0},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CosineSimilarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestMeanPairwiseCosine(t *testing.T) {
	t.Run("identical vectors mean 1", func(t *testing.T) {
		vecs := [][]float32{{1, 0}, {1, 0}, {1, 0}}
		if got := MeanPairwiseCosine(vecs); math.Abs(got-1.0) > 1e-9 {
			t.Errorf("MeanPairwiseCosine = %v, want 1.0", got)
		}
	})

	t.Run("orthogonal pair mean 0", func(t *testing.T) {
		vecs := [][]float32{{1, 0}, {0, 1}}
		if got := MeanPairwiseCosine(vecs); math.Abs(got) > 1e-9 {
			t.Errorf("MeanPairwiseCosine = %v, want 0", got)
		}
	})

	t.Run("fewer than two vectors", func(t *testing.T) {
		if got := MeanPairwiseCosine([][]float32{{1, 0}}); got != 0 {
			t.Errorf("MeanPairwiseCosine = %v, want 0", got)
		}
	})

	t.Run("excludes self pairs", func(t *testing.T) {
		// Two orthogonal vectors: with self-pairs the mean would be
		// pulled toward 1; without them it is exactly 0.
		vecs := [][]float32{{1, 0}, {0, 1}, {1, 0}}
		want := (0.0 + 1.0 + 0.0) / 3.0
		if got := MeanPairwiseCosine(vecs); math.Abs(got-want) > 1e-9 {
			t.Errorf("MeanPairwiseCosine = %v, want %v", got, want)
		}
	})
}
