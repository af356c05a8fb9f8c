package cluster

const (
	// MaxClusters caps the candidate k sweep.
	MaxClusters = 8

	// twoVectorSimilarity is the cosine threshold above which two lone
	// vectors are treated as one cluster.
	twoVectorSimilarity = 0.7

	// lowScoreCutoff marks a silhouette too weak to trust; below it the
	// homogeneity override is considered.
	lowScoreCutoff = 0.1

	// homogeneousSimilarity is the mean pairwise cosine above which a
	// weakly-separated corpus collapses to a single cluster.
	homogeneousSimilarity = 0.6
)

// Result holds the outcome of cluster optimization.
type Result struct {
	K      int   // Number of clusters
	Labels []int // One label in [0,K) per input vector
	Score  float64
}

// Optimize partitions vectors into an automatically chosen number of
// clusters. It sweeps candidate k from 2 to min(MaxClusters, n-1), scores
// each seeded k-means partition with the silhouette coefficient, and keeps
// the best; strict comparison means ties go to the smaller k. A best score
// under lowScoreCutoff on a corpus whose mean pairwise cosine exceeds
// homogeneousSimilarity collapses to one cluster. Degraded input never
// fails: a k whose evaluation errors is skipped, and when nothing scores
// the result is a single cluster.
func Optimize(vecs [][]float32) Result {
	n := len(vecs)

	switch n {
	case 0:
		return Result{K: 0}
	case 1:
		return Result{K: 1, Labels: []int{0}}
	case 2:
		if CosineSimilarity(vecs[0], vecs[1]) > twoVectorSimilarity {
			return Result{K: 1, Labels: []int{0, 0}}
		}
		return Result{K: 2, Labels: []int{0, 1}}
	}

	maxK := MaxClusters
	if n-1 < maxK {
		maxK = n - 1
	}

	best := Result{K: 1, Labels: make([]int, n), Score: -1}
	for k := 2; k <= maxK; k++ {
		labels, _, err := KMeans(vecs, k, DefaultRestarts, DefaultSeed)
		if err != nil {
			continue // this k is unusable, not fatal
		}
		score, err := Silhouette(vecs, labels, k)
		if err != nil {
			continue
		}
		if score > best.Score {
			best = Result{K: k, Labels: labels, Score: score}
		}
	}

	if best.Score < lowScoreCutoff && MeanPairwiseCosine(vecs) > homogeneousSimilarity {
		return Result{K: 1, Labels: make([]int, n), Score: best.Score}
	}

	return best
}
