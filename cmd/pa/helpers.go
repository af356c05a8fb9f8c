package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/paperatlas/paperatlas/internal/config"
	"github.com/paperatlas/paperatlas/internal/embedding"
	"github.com/paperatlas/paperatlas/internal/graph"
	"github.com/paperatlas/paperatlas/internal/label"
	"github.com/paperatlas/paperatlas/internal/paper"
	"github.com/paperatlas/paperatlas/internal/pipeline"
	"github.com/paperatlas/paperatlas/internal/storage"
)

// mustFindWorkspace finds the workspace root, exiting on failure.
func mustFindWorkspace() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.FindWorkspace(cwd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hint: run 'pa init' to create a workspace here")
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustOpenDatabase opens the workspace database, exiting on failure.
func mustOpenDatabase(root string) *storage.DB {
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads workspace config, exiting on failure.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// newEmbedder wires the remote embedding provider with its hash fallback.
func newEmbedder() *embedding.Embedder {
	var opts []embedding.RemoteOption
	if url := config.GetEmbedURL(); url != "" {
		opts = append(opts, embedding.WithURL(url))
	}
	if token := config.GetHFToken(); token != "" {
		opts = append(opts, embedding.WithToken(token))
	}
	remote := embedding.NewRemoteProvider(opts...)
	return embedding.NewEmbedder(remote, paper.EmbeddingDimensions)
}

// newLabeler wires the LLM cluster labeler. Without an API key the labeler
// still works through its keyword fallback.
func newLabeler() *label.Labeler {
	var opts []label.ChatOption
	if url := config.GetChatURL(); url != "" {
		opts = append(opts, label.WithChatURL(url))
	}
	if model := config.GetChatModel(); model != "" {
		opts = append(opts, label.WithChatModel(model))
	}

	key := config.GetOpenAIAPIKey()
	if key == "" && config.GetChatURL() == "" {
		// No key and no local endpoint means every call would fail; skip
		// straight to keyword labels.
		return label.NewLabeler(nil)
	}
	return label.NewLabeler(label.NewChatClient(key, opts...))
}

// newPipeline constructs the analysis pipeline from workspace configuration.
func newPipeline(db *storage.DB, cfg *config.Config) *pipeline.Pipeline {
	p := pipeline.New(db, newEmbedder(), newLabeler())

	opts := graph.DefaultOptions()
	if cfg.GraphThreshold > 0 {
		opts.Threshold = cfg.GraphThreshold
	}
	if cfg.BoostSameCluster != nil {
		opts.BoostSameCluster = *cfg.BoostSameCluster
	}
	p.SetGraphOptions(opts)
	return p
}

// exitCodeForError maps pipeline and storage errors to exit codes.
func exitCodeForError(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, pipeline.ErrTooFewPapers):
		return ExitTooFewPapers
	default:
		return ExitError
	}
}
