package main

import (
	"fmt"
	"strconv"

	"github.com/paperatlas/paperatlas/internal/paper"
	"github.com/spf13/cobra"
)

var projectDescription string

func init() {
	projectCreateCmd.Flags().StringVar(&projectDescription, "description", "", "Project description")
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and all of its papers",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	p, err := db.CreateProject(cfg.Owner, args[0], projectDescription)
	if err != nil {
		exitWithError(ExitError, "creating project: %v", err)
	}

	if humanOutput {
		fmt.Printf("Created project %d: %s\n", p.ID, p.Name)
	} else {
		outputJSON(p)
	}
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	projects, err := db.ListProjects(cfg.Owner)
	if err != nil {
		exitWithError(ExitError, "listing projects: %v", err)
	}

	if humanOutput {
		if len(projects) == 0 {
			fmt.Println("No projects in workspace")
			return nil
		}
		for _, p := range projects {
			fmt.Printf("  %-6d %s\n", p.ID, p.Name)
		}
	} else {
		if projects == nil {
			projects = []paper.Project{}
		}
		outputJSON(projects)
	}
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitWithError(ExitError, "invalid project id %q", args[0])
	}

	if err := db.DeleteProject(id, cfg.Owner); err != nil {
		exitWithError(exitCodeForError(err), "deleting project: %v", err)
	}

	if humanOutput {
		fmt.Printf("Deleted project %d\n", id)
	} else {
		outputJSON(StatusResponse{Status: "deleted"})
	}
	return nil
}
