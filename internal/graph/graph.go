// Package graph builds the similarity network shown in a project's map view.
package graph

import (
	"math"
	"sort"

	"github.com/paperatlas/paperatlas/internal/cluster"
	"github.com/paperatlas/paperatlas/internal/layout"
	"github.com/paperatlas/paperatlas/internal/paper"
)

const (
	// DefaultThreshold is the cosine similarity above which two papers
	// are connected regardless of cluster membership.
	DefaultThreshold = 0.3

	// DefaultSameClusterWeight is the minimum edge weight given to
	// same-cluster pairs whose raw similarity falls under the threshold.
	DefaultSameClusterWeight = 0.4

	maxSampleTitles = 3

	untitledPlaceholder = "Untitled Paper"
)

// Options controls edge construction.
type Options struct {
	// Threshold connects any pair whose cosine similarity exceeds it.
	Threshold float64

	// BoostSameCluster also connects same-cluster pairs below the
	// threshold, at a weight no lower than SameClusterWeight.
	BoostSameCluster  bool
	SameClusterWeight float64
}

// DefaultOptions returns the standard edge policy.
func DefaultOptions() Options {
	return Options{
		Threshold:         DefaultThreshold,
		BoostSameCluster:  true,
		SameClusterWeight: DefaultSameClusterWeight,
	}
}

// Node is one paper placed on the canvas. Everything but the position and
// cluster id is passthrough record data for the rendering client.
type Node struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Abstract  string  `json:"abstract,omitempty"`
	Authors   string  `json:"authors,omitempty"`
	Year      int     `json:"year,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ClusterID *int    `json:"cluster_id"`
}

// Edge connects two nodes with a similarity weight.
type Edge struct {
	Source int64   `json:"source"`
	Target int64   `json:"target"`
	Weight float64 `json:"weight"`
}

// ClusterInfo summarizes one cluster for the graph legend.
type ClusterInfo struct {
	ID           int      `json:"id"`
	PaperCount   int      `json:"paper_count"`
	SampleTitles []string `json:"sample_titles"`
}

// Graph is the full network payload.
type Graph struct {
	Nodes    []Node        `json:"nodes"`
	Edges    []Edge        `json:"edges"`
	Clusters []ClusterInfo `json:"clusters"`
}

// Build constructs the similarity graph for a project's papers. Papers
// without embeddings are left out of the network; when fewer than two
// embedded papers exist there is nothing to compare, so titled papers are
// simply tiled on the canvas with no edges.
func Build(papers []paper.Paper, opts Options) Graph {
	embedded := make([]paper.Paper, 0, len(papers))
	for _, p := range papers {
		if p.HasEmbedding() {
			embedded = append(embedded, p)
		}
	}

	if len(embedded) < 2 {
		return sparseGraph(papers)
	}

	vecs := make([][]float32, len(embedded))
	for i, p := range embedded {
		vecs[i] = p.Embedding
	}
	points := layout.FitToCanvas(layout.Positions(vecs))

	nodes := make([]Node, len(embedded))
	for i, p := range embedded {
		nodes[i] = Node{
			ID:        p.ID,
			Title:     p.Title,
			Abstract:  p.Abstract,
			Authors:   p.Authors,
			Year:      p.Year,
			X:         points[i].X,
			Y:         points[i].Y,
			ClusterID: p.ClusterID,
		}
	}

	edges := []Edge{}
	for i := 0; i < len(embedded); i++ {
		for j := i + 1; j < len(embedded); j++ {
			sim := cluster.CosineSimilarity(vecs[i], vecs[j])
			same := sameCluster(embedded[i].ClusterID, embedded[j].ClusterID)

			var weight float64
			switch {
			case sim > opts.Threshold:
				weight = sim
			case same && opts.BoostSameCluster:
				weight = math.Max(sim, opts.SameClusterWeight)
			default:
				continue
			}
			edges = append(edges, Edge{
				Source: embedded[i].ID,
				Target: embedded[j].ID,
				Weight: weight,
			})
		}
	}

	return Graph{
		Nodes:    nodes,
		Edges:    edges,
		Clusters: summarizeClusters(embedded),
	}
}

// sparseGraph tiles titled papers in rows of three with no edges.
func sparseGraph(papers []paper.Paper) Graph {
	nodes := []Node{}
	i := 0
	for _, p := range papers {
		if p.Title == "" || p.Title == untitledPlaceholder {
			continue
		}
		nodes = append(nodes, Node{
			ID:        p.ID,
			Title:     p.Title,
			Abstract:  p.Abstract,
			Authors:   p.Authors,
			Year:      p.Year,
			X:         float64(200 + (i%3)*200),
			Y:         float64(200 + (i/3)*150),
			ClusterID: p.ClusterID,
		})
		i++
	}
	return Graph{Nodes: nodes, Edges: []Edge{}, Clusters: []ClusterInfo{}}
}

func sameCluster(a, b *int) bool {
	return a != nil && b != nil && *a == *b
}

func summarizeClusters(papers []paper.Paper) []ClusterInfo {
	byID := map[int]*ClusterInfo{}
	for _, p := range papers {
		if p.ClusterID == nil {
			continue
		}
		info, ok := byID[*p.ClusterID]
		if !ok {
			info = &ClusterInfo{ID: *p.ClusterID}
			byID[*p.ClusterID] = info
		}
		info.PaperCount++
		if len(info.SampleTitles) < maxSampleTitles && p.Title != "" {
			info.SampleTitles = append(info.SampleTitles, p.Title)
		}
	}

	out := make([]ClusterInfo, 0, len(byID))
	for _, info := range byID {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
