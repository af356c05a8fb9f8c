package main

import (
	"fmt"

	"github.com/paperatlas/paperatlas/internal/graph"
	"github.com/spf13/cobra"
)

var (
	graphProject   int64
	graphThreshold float64
	graphNoBoost   bool
)

func init() {
	graphCmd.Flags().Int64Var(&graphProject, "project", 0, "Project id (required)")
	graphCmd.Flags().Float64Var(&graphThreshold, "threshold", 0, "Similarity cutoff for edges (overrides config)")
	graphCmd.Flags().BoolVar(&graphNoBoost, "no-boost", false, "Do not connect same-cluster pairs below the cutoff")
	graphCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(graphCmd)
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build a project's similarity graph",
	Long: `Build a project's similarity graph.

Nodes are papers placed on a 2-D canvas; edges connect similar papers.
Pairs in the same cluster stay connected even below the similarity cutoff
unless --no-boost is given.`,
	Args: cobra.NoArgs,
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	p := newPipeline(db, cfg)
	if cmd.Flags().Changed("threshold") || graphNoBoost {
		opts := graph.DefaultOptions()
		if cfg.GraphThreshold > 0 {
			opts.Threshold = cfg.GraphThreshold
		}
		if cmd.Flags().Changed("threshold") {
			opts.Threshold = graphThreshold
		}
		if graphNoBoost {
			opts.BoostSameCluster = false
		}
		p.SetGraphOptions(opts)
	}

	g, err := p.Graph(cmd.Context(), graphProject, cfg.Owner)
	if err != nil {
		exitWithError(exitCodeForError(err), "building graph: %v", err)
	}

	if humanOutput {
		fmt.Printf("%d nodes, %d edges, %d clusters\n", len(g.Nodes), len(g.Edges), len(g.Clusters))
		for _, c := range g.Clusters {
			fmt.Printf("  cluster %d: %d papers\n", c.ID, c.PaperCount)
		}
	} else {
		outputJSON(g)
	}
	return nil
}
