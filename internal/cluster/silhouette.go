package cluster

import "fmt"

// Silhouette computes the mean silhouette coefficient for a labeled set of
// vectors. For each point, a is the mean distance to other members of its
// own cluster and b is the mean distance to the nearest other cluster; the
// per-point score is (b-a)/max(a,b), in [-1,1], and points in singleton
// clusters score 0. Requires at least 2 clusters and every label populated.
func Silhouette(vecs [][]float32, labels []int, k int) (float64, error) {
	n := len(vecs)
	if len(labels) != n {
		return 0, fmt.Errorf("labels length %d != vectors length %d", len(labels), n)
	}
	if k < 2 || k > n {
		return 0, fmt.Errorf("silhouette undefined for k=%d with n=%d", k, n)
	}

	sizes := make([]int, k)
	for _, l := range labels {
		if l < 0 || l >= k {
			return 0, fmt.Errorf("label %d out of range [0,%d)", l, k)
		}
		sizes[l]++
	}
	for c, s := range sizes {
		if s == 0 {
			return 0, fmt.Errorf("cluster %d is empty", c)
		}
	}

	var total float64
	sums := make([]float64, k)
	for i := 0; i < n; i++ {
		for c := range sums {
			sums[c] = 0
		}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			sums[labels[j]] += euclideanDistance(vecs[i], vecs[j])
		}

		own := labels[i]
		if sizes[own] == 1 {
			// Singleton clusters contribute 0 by convention.
			continue
		}

		a := sums[own] / float64(sizes[own]-1)
		b := -1.0
		for c := 0; c < k; c++ {
			if c == own {
				continue
			}
			mean := sums[c] / float64(sizes[c])
			if b < 0 || mean < b {
				b = mean
			}
		}

		max := a
		if b > max {
			max = b
		}
		if max > 0 {
			total += (b - a) / max
		}
	}

	return total / float64(n), nil
}
