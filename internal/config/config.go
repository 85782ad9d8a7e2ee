// Package config provides configuration loading and structs for the lexica service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Search SearchConfig `yaml:"search"`
	Corpus CorpusConfig `yaml:"corpus"`
	Watch  WatchConfig  `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DataConfig holds the paths of the vector file and the default tagged corpus.
// API clients may only name CorpusPath or files under one of CorpusDirs.
type DataConfig struct {
	VectorsPath string   `yaml:"vectors_path"`
	CorpusPath  string   `yaml:"corpus_path"`
	CorpusDirs  []string `yaml:"corpus_dirs,omitempty"`
}

// SearchConfig holds similarity query settings.
type SearchConfig struct {
	DefaultLimit       int `yaml:"default_limit"`
	MaxLimit           int `yaml:"max_limit"`
	CacheSize          int `yaml:"cache_size"`
	MaxSuggestions     int `yaml:"max_suggestions"`
	SuggestionDistance int `yaml:"suggestion_distance"`
}

// CorpusConfig holds frequency query settings.
type CorpusConfig struct {
	Stem     bool          `yaml:"stem"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// WatchConfig holds file watch settings.
type WatchConfig struct {
	Enabled  *bool         `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// EnabledOrDefault returns whether to watch the data files; defaults to true when unset.
func (w *WatchConfig) EnabledOrDefault() bool {
	if w.Enabled != nil {
		return *w.Enabled
	}
	return true
}

// Load reads and parses the config file at path, applies environment
// overrides and defaults, and expands paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Data.VectorsPath = expandPath(cfg.Data.VectorsPath, configDir)
	cfg.Data.CorpusPath = expandPath(cfg.Data.CorpusPath, configDir)
	for i, dir := range cfg.Data.CorpusDirs {
		cfg.Data.CorpusDirs[i] = expandPath(dir, configDir)
	}

	return &cfg, nil
}

// Default returns a config built from the environment and defaults only.
func Default() (*Config, error) {
	var cfg Config
	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with LEXICA_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("LEXICA_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LEXICA_DEBUG: %w", err)
		}
		cfg.Debug = b
	}
	if v, ok := os.LookupEnv("LEXICA_HOST"); ok {
		cfg.Server.Host = v
	}
	if v, ok := os.LookupEnv("LEXICA_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LEXICA_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v, ok := os.LookupEnv("LEXICA_VECTORS_PATH"); ok {
		cfg.Data.VectorsPath = v
	}
	if v, ok := os.LookupEnv("LEXICA_CORPUS_PATH"); ok {
		cfg.Data.CorpusPath = v
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// paths starting with "~/" are relative to the home directory. Empty paths stay empty.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
		return path
	}
	return filepath.Join(configDir, path)
}
