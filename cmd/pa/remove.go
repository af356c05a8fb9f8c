package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeProject int64

func init() {
	removeCmd.Flags().Int64Var(&removeProject, "project", 0, "Project id (required)")
	removeCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <paper-id>",
	Short: "Remove a paper from a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	if _, err := db.GetProject(removeProject, cfg.Owner); err != nil {
		exitWithError(exitCodeForError(err), "project %d: %v", removeProject, err)
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitWithError(ExitError, "invalid paper id %q", args[0])
	}

	if err := db.DeletePaper(id, removeProject); err != nil {
		exitWithError(exitCodeForError(err), "removing paper: %v", err)
	}

	if humanOutput {
		fmt.Printf("Removed paper %d\n", id)
	} else {
		outputJSON(StatusResponse{Status: "removed"})
	}
	return nil
}
