package main

import (
	"fmt"

	"github.com/paperatlas/paperatlas/internal/paper"
	"github.com/spf13/cobra"
)

var listProject int64

func init() {
	listCmd.Flags().Int64Var(&listProject, "project", 0, "Project id (required)")
	listCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers in a project",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	if _, err := db.GetProject(listProject, cfg.Owner); err != nil {
		exitWithError(exitCodeForError(err), "project %d: %v", listProject, err)
	}

	papers, err := db.ListPapers(listProject)
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	if humanOutput {
		if len(papers) == 0 {
			fmt.Println("No papers in project")
			return nil
		}
		for _, p := range papers {
			marker := " "
			if p.HasEmbedding() {
				marker = "*"
			}
			fmt.Printf("  %-6d %s %s\n", p.ID, marker, truncateString(p.Title, ListTitleMaxLen))
		}
	} else {
		if papers == nil {
			papers = []paper.Paper{}
		}
		outputJSON(papers)
	}
	return nil
}
