package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/paperatlas/config.yml.
type GlobalConfig struct {
	EmbedURL     string `yaml:"embed_url,omitempty"`
	HFToken      string `yaml:"hf_token,omitempty"`
	ChatURL      string `yaml:"chat_url,omitempty"`
	ChatModel    string `yaml:"chat_model,omitempty"`
	OpenAIAPIKey string `yaml:"openai_api_key,omitempty"`
	S2APIKey     string `yaml:"s2_api_key,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "paperatlas"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/paperatlas/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetHFToken returns the Hugging Face token, preferring the environment.
func GetHFToken() string {
	if v := os.Getenv("HF_TOKEN"); v != "" {
		return v
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.HFToken
}

// GetEmbedURL returns the configured embedding endpoint, if any.
func GetEmbedURL() string {
	if v := os.Getenv("PAPERATLAS_EMBED_URL"); v != "" {
		return v
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.EmbedURL
}

// GetOpenAIAPIKey returns the chat API key, preferring the environment.
func GetOpenAIAPIKey() string {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		return v
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.OpenAIAPIKey
}

// GetChatURL returns the configured chat completions endpoint, if any.
func GetChatURL() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.ChatURL
}

// GetChatModel returns the configured labeling model, if any.
func GetChatModel() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.ChatModel
}

// GetS2APIKey returns the Semantic Scholar API key, preferring the environment.
func GetS2APIKey() string {
	if v := os.Getenv("S2_API_KEY"); v != "" {
		return v
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.S2APIKey
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
