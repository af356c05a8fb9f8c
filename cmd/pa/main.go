// Package main provides the pa CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// A missing .env is fine; explicit environment always wins.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pa",
	Short: "Research paper atlas CLI",
	Long: `pa organizes research papers into projects and maps them.

Core features:
  - Projects of papers pulled from arXiv, Semantic Scholar, or PDFs
  - Automatic embedding, clustering, and cluster labeling
  - Similarity graphs with 2-D canvas layouts

Data is stored in a SQLite database under .paperatlas/.
All commands output JSON by default for tool integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
