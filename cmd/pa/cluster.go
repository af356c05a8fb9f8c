package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/paperatlas/paperatlas/internal/pipeline"
	"github.com/spf13/cobra"
)

var clusterProject int64

func init() {
	clusterCmd.Flags().Int64Var(&clusterProject, "project", 0, "Project id (required)")
	clusterCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(clusterCmd)
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Cluster a project's papers by topic",
	Long: `Cluster a project's papers by topic.

Papers without embeddings are embedded first. The number of clusters is
chosen automatically and each cluster gets keywords and a short label.`,
	Args: cobra.NoArgs,
	RunE: runCluster,
}

func runCluster(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	p := newPipeline(db, cfg)
	if humanOutput {
		p.SetProgressReporter(pipeline.ProgressFunc(func(current, total int) {
			fmt.Fprintf(os.Stderr, "\rEmbedding papers... %d/%d", current, total)
			if current == total {
				fmt.Fprintln(os.Stderr)
			}
		}))
	}

	res, err := p.Cluster(cmd.Context(), clusterProject, cfg.Owner)
	if err != nil {
		exitWithError(exitCodeForError(err), "clustering: %v", err)
	}

	if humanOutput {
		fmt.Printf("%d clusters over %d papers\n\n", res.NClusters, res.PapersClustered)
		for _, s := range res.ClusterSummaries {
			fmt.Printf("  [%d] %s (%d papers)\n", s.ClusterID, s.Label, s.PaperCount)
			if len(s.Keywords) > 0 {
				fmt.Printf("      keywords: %s\n", strings.Join(s.Keywords, ", "))
			}
		}
	} else {
		outputJSON(res)
	}
	return nil
}
