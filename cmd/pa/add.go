package main

import (
	"context"
	"fmt"

	"github.com/paperatlas/paperatlas/internal/config"
	"github.com/paperatlas/paperatlas/internal/fetch"
	"github.com/paperatlas/paperatlas/internal/paper"
	"github.com/paperatlas/paperatlas/internal/pdfextract"
	"github.com/spf13/cobra"
)

var (
	addProject  int64
	addArxiv    string
	addDOI      string
	addPDF      string
	addTitle    string
	addAbstract string
	addAuthors  string
	addYear     int
)

func init() {
	addCmd.Flags().Int64Var(&addProject, "project", 0, "Project id (required)")
	addCmd.Flags().StringVar(&addArxiv, "arxiv", "", "arXiv id or URL")
	addCmd.Flags().StringVar(&addDOI, "doi", "", "DOI or doi.org URL")
	addCmd.Flags().StringVar(&addPDF, "pdf", "", "Path to a PDF file")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Paper title (manual entry)")
	addCmd.Flags().StringVar(&addAbstract, "abstract", "", "Paper abstract (manual entry)")
	addCmd.Flags().StringVar(&addAuthors, "authors", "", "Comma-separated authors (manual entry)")
	addCmd.Flags().IntVar(&addYear, "year", 0, "Publication year (manual entry)")
	addCmd.MarkFlagRequired("project")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a paper to a project",
	Long: `Add a paper to a project from one of several sources.

Examples:
  pa add --project 1 --arxiv 1706.03762
  pa add --project 1 --doi 10.1038/nature14539
  pa add --project 1 --pdf ~/papers/resnet.pdf
  pa add --project 1 --title "My Paper" --abstract "..." --year 2024`,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	db := mustOpenDatabase(root)
	defer db.Close()

	if _, err := db.GetProject(addProject, cfg.Owner); err != nil {
		exitWithError(exitCodeForError(err), "project %d: %v", addProject, err)
	}

	meta, err := resolveMetadata(cmd.Context())
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	added, err := db.AddPaper(paper.Paper{
		ProjectID: addProject,
		Title:     meta.Title,
		Abstract:  meta.Abstract,
		Authors:   meta.Authors,
		Year:      meta.Year,
		DOI:       meta.DOI,
		ArXivID:   meta.ArXivID,
	})
	if err != nil {
		exitWithError(ExitError, "adding paper: %v", err)
	}

	if humanOutput {
		fmt.Printf("Added paper %d: %s\n", added.ID, truncateString(added.Title, ListTitleMaxLen))
	} else {
		outputJSON(added)
	}
	return nil
}

// resolveMetadata picks the metadata source from the flags given.
func resolveMetadata(ctx context.Context) (*fetch.Metadata, error) {
	switch {
	case addArxiv != "":
		client := fetch.NewArxivClient()
		return client.FetchByID(ctx, addArxiv)

	case addDOI != "":
		client := fetch.NewS2Client(fetch.WithS2APIKey(config.GetS2APIKey()))
		return client.FetchByDOI(ctx, addDOI)

	case addPDF != "":
		res, err := pdfextract.Extract(addPDF)
		if err != nil {
			return nil, err
		}
		meta := &fetch.Metadata{
			Title:    res.Title,
			Abstract: res.Abstract,
			DOI:      res.DOI,
			ArXivID:  res.ArXivID,
		}
		if meta.Title == "" {
			meta.Title = "Untitled Paper"
		}
		return meta, nil

	case addTitle != "":
		return &fetch.Metadata{
			Title:    addTitle,
			Abstract: addAbstract,
			Authors:  addAuthors,
			Year:     addYear,
		}, nil

	default:
		return nil, fmt.Errorf("one of --arxiv, --doi, --pdf, or --title is required")
	}
}
