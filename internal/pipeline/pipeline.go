// Package pipeline orchestrates embedding, clustering, labeling, and graph
// construction for a project's papers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/paperatlas/paperatlas/internal/cluster"
	"github.com/paperatlas/paperatlas/internal/graph"
	"github.com/paperatlas/paperatlas/internal/keywords"
	"github.com/paperatlas/paperatlas/internal/label"
	"github.com/paperatlas/paperatlas/internal/paper"
)

// maxEmbedConcurrency limits parallel embedding calls to stay under typical
// API rate limits while keeping throughput reasonable.
const maxEmbedConcurrency = 10

// ErrTooFewPapers is returned when a project lacks the two embedded papers
// clustering needs.
var ErrTooFewPapers = errors.New("project needs at least two embeddable papers")

// Store is the persistence surface the pipeline needs.
type Store interface {
	GetProject(id int64, owner string) (*paper.Project, error)
	ListPapers(projectID int64) ([]paper.Paper, error)
	UpdateEmbedding(id int64, vec []float32) error
	UpdateClusterID(id int64, clusterID *int) error
	ClearClusters(projectID int64) error
}

// Embedder turns paper text into a vector. The boolean reports whether an
// embedding was produced at all.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, bool)
}

// ProgressReporter receives progress updates during the embedding stage.
type ProgressReporter interface {
	OnProgress(current, total int)
}

// ProgressFunc is a function adapter for ProgressReporter.
type ProgressFunc func(current, total int)

// OnProgress implements ProgressReporter.
func (f ProgressFunc) OnProgress(current, total int) {
	f(current, total)
}

// ClusterSummary describes one cluster in a clustering result.
type ClusterSummary struct {
	ClusterID  int      `json:"cluster_id"`
	Label      string   `json:"label"`
	Keywords   []string `json:"keywords"`
	PaperCount int      `json:"paper_count"`
	PaperIDs   []int64  `json:"paper_ids"`
}

// ClusterResult is the payload of a clustering run.
type ClusterResult struct {
	NClusters        int              `json:"n_clusters"`
	ClusterSummaries []ClusterSummary `json:"cluster_summaries"`
	PapersClustered  int              `json:"papers_clustered"`
}

// Pipeline runs project-level analysis operations.
type Pipeline struct {
	store     Store
	embedder  Embedder
	labeler   *label.Labeler
	graphOpts graph.Options
	progress  ProgressReporter
}

// New creates a pipeline. The labeler may be nil, forcing keyword-only
// cluster names.
func New(store Store, embedder Embedder, labeler *label.Labeler) *Pipeline {
	return &Pipeline{
		store:     store,
		embedder:  embedder,
		labeler:   labeler,
		graphOpts: graph.DefaultOptions(),
	}
}

// SetProgressReporter sets the progress reporter for embedding work.
func (p *Pipeline) SetProgressReporter(reporter ProgressReporter) {
	p.progress = reporter
}

// SetGraphOptions overrides the default edge policy.
func (p *Pipeline) SetGraphOptions(opts graph.Options) {
	p.graphOpts = opts
}

// Cluster embeds any papers still missing vectors, partitions the project's
// embedded papers, persists the assignments, and names each cluster. Cluster
// numbering in the result is dense and starts at zero.
func (p *Pipeline) Cluster(ctx context.Context, projectID int64, owner string) (*ClusterResult, error) {
	if _, err := p.store.GetProject(projectID, owner); err != nil {
		return nil, err
	}
	papers, err := p.store.ListPapers(projectID)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}

	if err := p.ensureEmbeddings(ctx, papers); err != nil {
		return nil, err
	}

	embedded := make([]paper.Paper, 0, len(papers))
	for _, pp := range papers {
		if pp.HasEmbedding() {
			embedded = append(embedded, pp)
		}
	}
	if len(embedded) < 2 {
		return nil, ErrTooFewPapers
	}

	// Stale assignments from a previous run must not survive a re-cluster.
	if err := p.store.ClearClusters(projectID); err != nil {
		return nil, fmt.Errorf("clearing clusters: %w", err)
	}

	vecs := make([][]float32, len(embedded))
	for i, pp := range embedded {
		vecs[i] = pp.Embedding
	}
	res := cluster.Optimize(vecs)

	for i := range embedded {
		id := res.Labels[i]
		if err := p.store.UpdateClusterID(embedded[i].ID, &id); err != nil {
			return nil, fmt.Errorf("assigning paper %d: %w", embedded[i].ID, err)
		}
	}

	summaries := p.summarize(ctx, embedded, res)
	return &ClusterResult{
		NClusters:        res.K,
		ClusterSummaries: summaries,
		PapersClustered:  len(embedded),
	}, nil
}

// Graph embeds any papers still missing vectors and builds the project's
// similarity network.
func (p *Pipeline) Graph(ctx context.Context, projectID int64, owner string) (*graph.Graph, error) {
	if _, err := p.store.GetProject(projectID, owner); err != nil {
		return nil, err
	}
	papers, err := p.store.ListPapers(projectID)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}

	if err := p.ensureEmbeddings(ctx, papers); err != nil {
		return nil, err
	}

	g := graph.Build(papers, p.graphOpts)
	return &g, nil
}

// ensureEmbeddings fills missing vectors in place and persists them.
// Embedding calls run concurrently under a semaphore; papers whose text is
// too thin to embed are left untouched.
func (p *Pipeline) ensureEmbeddings(ctx context.Context, papers []paper.Paper) error {
	var missing []int
	for i := range papers {
		if !papers[i].HasEmbedding() {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sem := make(chan struct{}, maxEmbedConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for _, idx := range missing {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			vec, ok := p.embedder.Embed(ctx, papers[idx].EmbeddingText())
			mu.Lock()
			if ok {
				papers[idx].Embedding = vec
			}
			done++
			if p.progress != nil {
				p.progress.OnProgress(done, len(missing))
			}
			mu.Unlock()
		}(idx)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, idx := range missing {
		if !papers[idx].HasEmbedding() {
			continue
		}
		if err := p.store.UpdateEmbedding(papers[idx].ID, papers[idx].Embedding); err != nil {
			return fmt.Errorf("saving embedding for paper %d: %w", papers[idx].ID, err)
		}
	}
	return nil
}

// summarize builds keyword and label summaries for each cluster.
func (p *Pipeline) summarize(ctx context.Context, embedded []paper.Paper, res cluster.Result) []ClusterSummary {
	members := make(map[int][]paper.Paper)
	for i, pp := range embedded {
		id := res.Labels[i]
		members[id] = append(members[id], pp)
	}

	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	summaries := make([]ClusterSummary, 0, len(ids))
	for _, id := range ids {
		group := members[id]

		texts := make([]keywords.Text, len(group))
		labelMembers := make([]label.Member, len(group))
		paperIDs := make([]int64, len(group))
		for i, pp := range group {
			texts[i] = keywords.Text{Title: pp.Title, Abstract: pp.Abstract}
			labelMembers[i] = label.Member{Title: pp.Title, Abstract: pp.Abstract}
			paperIDs[i] = pp.ID
		}

		kws := keywords.Extract(texts)
		var name string
		if p.labeler != nil {
			name = p.labeler.Label(ctx, labelMembers, kws)
		} else {
			name = label.KeywordLabel(kws)
		}

		summaries = append(summaries, ClusterSummary{
			ClusterID:  id,
			Label:      name,
			Keywords:   kws,
			PaperCount: len(group),
			PaperIDs:   paperIDs,
		})
	}
	return summaries
}
