package main

import (
	"fmt"
	"os"

	"github.com/paperatlas/paperatlas/internal/config"
	"github.com/spf13/cobra"
)

var initOwner string

func init() {
	initCmd.Flags().StringVar(&initOwner, "owner", "", "Default project owner (defaults to $USER)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a paperatlas workspace",
	Long: `Initialize a paperatlas workspace in the current directory.

Creates:
  .paperatlas/
  ├── config.json  # Default config
  └── papers.db    # Created on first use`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if _, err := config.Init(root, initOwner); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized paperatlas workspace in %s\n", root)
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: root})
	}
	return nil
}
