package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitAndLoad(t *testing.T) {
	root := t.TempDir()

	cfg, err := Init(root, "alice")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if cfg.Owner != "alice" {
		t.Errorf("Owner = %q, want alice", cfg.Owner)
	}
	if !IsWorkspace(root) {
		t.Error("workspace directory was not created")
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Owner != "alice" {
		t.Errorf("loaded Owner = %q, want alice", loaded.Owner)
	}

	if _, err := Init(root, "alice"); err == nil {
		t.Error("expected error re-initializing an existing workspace")
	}
}

func TestLoad_DefaultsOwner(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(WorkspacePath(root), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(root), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Owner != "default" {
		t.Errorf("Owner = %q, want default", cfg.Owner)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(root, "alice"); err != nil {
		t.Fatalf("Init: %v", err)
	}

	boost := false
	cfg := &Config{Owner: "alice", GraphThreshold: 0.45, BoostSameCluster: &boost}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.GraphThreshold != 0.45 {
		t.Errorf("GraphThreshold = %v, want 0.45", loaded.GraphThreshold)
	}
	if loaded.BoostSameCluster == nil || *loaded.BoostSameCluster {
		t.Errorf("BoostSameCluster = %v, want false", loaded.BoostSameCluster)
	}
}

func TestFindWorkspace(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(root, "alice"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindWorkspace(nested)
	if err != nil {
		t.Fatalf("FindWorkspace: %v", err)
	}
	// Resolve symlinks so macOS /var vs /private/var temp paths compare equal.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("found %q, want %q", found, root)
	}
}

func TestFindWorkspace_NotFound(t *testing.T) {
	if _, err := FindWorkspace(t.TempDir()); err == nil {
		t.Error("expected error outside any workspace")
	}
}

func TestGlobalConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if cfg.HFToken != "" || cfg.EmbedURL != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestGlobalConfig_LoadsYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	dir := filepath.Join(home, GlobalConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "hf_token: tok123\nchat_model: gpt-4o-mini\n"
	if err := os.WriteFile(filepath.Join(dir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if cfg.HFToken != "tok123" {
		t.Errorf("HFToken = %q", cfg.HFToken)
	}
	if GetChatModel() != "gpt-4o-mini" {
		t.Errorf("GetChatModel = %q", GetChatModel())
	}
}

func TestGetHFToken_PrefersEnvironment(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HF_TOKEN", "env-token")
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	if got := GetHFToken(); got != "env-token" {
		t.Errorf("GetHFToken = %q, want env-token", got)
	}
}
