// Package config handles workspace and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents workspace configuration stored in .paperatlas/config.json.
type Config struct {
	Owner            string  `json:"owner"`                        // Default project owner for CLI operations
	GraphThreshold   float64 `json:"graph_threshold,omitempty"`    // Similarity cutoff for graph edges
	BoostSameCluster *bool   `json:"boost_same_cluster,omitempty"` // Connect same-cluster pairs below the cutoff
}

const (
	WorkspaceDir = ".paperatlas"
	ConfigFile   = "config.json"
	DBFile       = "papers.db"
)

// WorkspacePath returns the path to the .paperatlas directory from a root path.
func WorkspacePath(root string) string {
	return filepath.Join(root, WorkspaceDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, WorkspaceDir, ConfigFile)
}

// DBPath returns the path to the papers database from a root path.
func DBPath(root string) string {
	return filepath.Join(root, WorkspaceDir, DBFile)
}

// IsWorkspace checks if the given path contains a paperatlas workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(WorkspacePath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find a paperatlas workspace.
// Returns the workspace root path or an error if not found.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a paperatlas workspace (no %s directory found)", WorkspaceDir)
		}
		abs = parent
	}
}

// Init creates a workspace at the given root and writes a default config.
// Fails if one already exists.
func Init(root, owner string) (*Config, error) {
	if IsWorkspace(root) {
		return nil, fmt.Errorf("workspace already exists at %s", WorkspacePath(root))
	}
	if err := os.MkdirAll(WorkspacePath(root), 0755); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	if owner == "" {
		owner = os.Getenv("USER")
	}
	if owner == "" {
		owner = "default"
	}

	cfg := &Config{Owner: owner}
	if err := cfg.Save(root); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Owner == "" {
		cfg.Owner = "default"
	}

	return &cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
