package cluster

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	// maxIterations bounds a single k-means run.
	maxIterations = 100

	// DefaultRestarts is the number of seeded restarts per k; the run with
	// the lowest inertia wins.
	DefaultRestarts = 10

	// DefaultSeed fixes the random source so repeated runs on the same
	// vectors produce identical assignments.
	DefaultSeed = 42
)

var errDegenerate = errors.New("degenerate partition")

// KMeans partitions vecs into k clusters minimizing within-cluster sum of
// squared Euclidean distances. It runs `restarts` independent k-means++
// initializations from a fixed seed and keeps the assignment with the best
// inertia. Every returned label is in [0,k) and every cluster is non-empty.
func KMeans(vecs [][]float32, k, restarts int, seed int64) ([]int, float64, error) {
	n := len(vecs)
	if k < 1 || k > n {
		return nil, 0, fmt.Errorf("invalid k=%d for %d vectors", k, n)
	}
	if restarts < 1 {
		restarts = 1
	}

	rng := rand.New(rand.NewSource(seed))

	var bestLabels []int
	bestInertia := -1.0
	for r := 0; r < restarts; r++ {
		labels, inertia, err := kmeansOnce(vecs, k, rng)
		if err != nil {
			continue
		}
		if bestLabels == nil || inertia < bestInertia {
			bestLabels = labels
			bestInertia = inertia
		}
	}

	if bestLabels == nil {
		return nil, 0, errDegenerate
	}
	return bestLabels, bestInertia, nil
}

// kmeansOnce performs one k-means run with k-means++ initialization.
func kmeansOnce(vecs [][]float32, k int, rng *rand.Rand) ([]int, float64, error) {
	n := len(vecs)
	dim := len(vecs[0])

	centroids := initCentroids(vecs, k, rng)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		// Assignment step.
		for i, v := range vecs {
			best := 0
			bestDist := squaredDistance(v, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDistance(v, centroids[c]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		// Keep every cluster populated: hand the point farthest from its
		// centroid to each empty cluster.
		if fixEmptyClusters(vecs, labels, centroids, k) {
			changed = true
		}

		if !changed && iter > 0 {
			break
		}

		// Update step.
		counts := make([]int, k)
		for c := range centroids {
			for d := 0; d < dim; d++ {
				centroids[c][d] = 0
			}
		}
		for i, v := range vecs {
			c := labels[i]
			counts[c]++
			for d := 0; d < dim; d++ {
				centroids[c][d] += float64(v[d])
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				return nil, 0, errDegenerate
			}
			for d := 0; d < dim; d++ {
				centroids[c][d] /= float64(counts[c])
			}
		}
	}

	var inertia float64
	for i, v := range vecs {
		inertia += squaredDistance(v, centroids[labels[i]])
	}
	return labels, inertia, nil
}

// initCentroids selects k starting centroids with k-means++ weighting:
// the first uniformly at random, each subsequent one with probability
// proportional to its squared distance from the nearest chosen centroid.
func initCentroids(vecs [][]float32, k int, rng *rand.Rand) [][]float64 {
	n := len(vecs)
	dim := len(vecs[0])

	centroids := make([][]float64, 0, k)
	centroids = append(centroids, toFloat64(vecs[rng.Intn(n)], dim))

	dists := make([]float64, n)
	for len(centroids) < k {
		var total float64
		for i, v := range vecs {
			d := squaredDistance(v, centroids[0])
			for _, c := range centroids[1:] {
				if dc := squaredDistance(v, c); dc < d {
					d = dc
				}
			}
			dists[i] = d
			total += d
		}

		idx := 0
		if total > 0 {
			target := rng.Float64() * total
			var acc float64
			for i, d := range dists {
				acc += d
				if acc >= target {
					idx = i
					break
				}
			}
		} else {
			// All points coincide with existing centroids.
			idx = rng.Intn(n)
		}
		centroids = append(centroids, toFloat64(vecs[idx], dim))
	}

	return centroids
}

// fixEmptyClusters reassigns one far-out point to each empty cluster.
// Reports whether any label changed.
func fixEmptyClusters(vecs [][]float32, labels []int, centroids [][]float64, k int) bool {
	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}

	changed := false
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			continue
		}
		// Donate the point farthest from its current centroid, from a
		// cluster that can spare one.
		donor := -1
		worst := -1.0
		for i, v := range vecs {
			if counts[labels[i]] <= 1 {
				continue
			}
			if d := squaredDistance(v, centroids[labels[i]]); d > worst {
				worst = d
				donor = i
			}
		}
		if donor < 0 {
			continue
		}
		counts[labels[donor]]--
		labels[donor] = c
		counts[c] = 1
		changed = true
	}
	return changed
}

func toFloat64(v []float32, dim int) []float64 {
	out := make([]float64, dim)
	for i := range v {
		out[i] = float64(v[i])
	}
	return out
}
