package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
data:
  vectors_path: "vectors.txt"
corpus:
  stem: true
  cache_ttl: 90s
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if want := filepath.Join(dir, "vectors.txt"); cfg.Data.VectorsPath != want {
		t.Errorf("vectors_path = %s, want %s", cfg.Data.VectorsPath, want)
	}
	if cfg.Data.CorpusPath != "" {
		t.Errorf("corpus_path should stay empty when unset, got %s", cfg.Data.CorpusPath)
	}
	if !cfg.Corpus.Stem || cfg.Corpus.CacheTTL != 90*time.Second {
		t.Errorf("unexpected corpus config: %+v", cfg.Corpus)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data:
  vectors_path: "./data/glove.txt"
  corpus_path: "/abs/brown.txt"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "data", "glove.txt"); cfg.Data.VectorsPath != want {
		t.Errorf("vectors_path = %s, want %s", cfg.Data.VectorsPath, want)
	}
	if cfg.Data.CorpusPath != "/abs/brown.txt" {
		t.Errorf("absolute corpus_path changed: %s", cfg.Data.CorpusPath)
	}
}

func TestLoad_CorpusDirsExpanded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data:
  vectors_path: "vectors.txt"
  corpus_dirs:
    - "corpora"
    - "/srv/brown"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "corpora"), "/srv/brown"}
	if len(cfg.Data.CorpusDirs) != len(want) {
		t.Fatalf("corpus_dirs = %v, want %v", cfg.Data.CorpusDirs, want)
	}
	for i := range want {
		if cfg.Data.CorpusDirs[i] != want[i] {
			t.Errorf("corpus_dirs[%d] = %s, want %s", i, cfg.Data.CorpusDirs[i], want[i])
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [1, 2"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LEXICA_DEBUG", "true")
	t.Setenv("LEXICA_PORT", "9191")
	t.Setenv("LEXICA_VECTORS_PATH", "/data/vectors.txt")
	t.Setenv("LEXICA_CORPUS_PATH", "/data/brown.txt")
	t.Setenv("LEXICA_HOST", "0.0.0.0")

	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug || cfg.Server.Port != 9191 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Data.VectorsPath != "/data/vectors.txt" || cfg.Data.CorpusPath != "/data/brown.txt" {
		t.Errorf("data paths: %+v", cfg.Data)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("LEXICA_PORT", "eighty")
	if _, err := Default(); err == nil {
		t.Error("expected error for invalid LEXICA_PORT")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Search.DefaultLimit != 10 || cfg.Search.MaxLimit != 100 {
		t.Errorf("default limits: got %d/%d", cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}
	if cfg.Search.CacheSize != 1024 {
		t.Errorf("default cache size: got %d", cfg.Search.CacheSize)
	}
	if cfg.Search.MaxSuggestions != 5 || cfg.Search.SuggestionDistance != 2 {
		t.Errorf("default suggestions: got %+v", cfg.Search)
	}
	if cfg.Corpus.CacheTTL != 10*time.Minute {
		t.Errorf("default corpus cache ttl: got %s", cfg.Corpus.CacheTTL)
	}
	if cfg.Watch.Debounce != 400*time.Millisecond {
		t.Errorf("default debounce: got %s", cfg.Watch.Debounce)
	}
}

func TestWatchConfig_EnabledOrDefault(t *testing.T) {
	t.Run("nil_returns_true", func(t *testing.T) {
		w := &WatchConfig{}
		if got := w.EnabledOrDefault(); !got {
			t.Errorf("EnabledOrDefault() = %v, want true", got)
		}
	})
	t.Run("false_returns_false", func(t *testing.T) {
		f := false
		w := &WatchConfig{Enabled: &f}
		if got := w.EnabledOrDefault(); got {
			t.Errorf("EnabledOrDefault() = %v, want false", got)
		}
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yaml")
	cfg := &Config{
		Server: ServerConfig{Host: "localhost", Port: 9090},
		Data:   DataConfig{VectorsPath: "/tmp/vectors.txt"},
		Corpus: CorpusConfig{CacheTTL: 3 * time.Minute},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
	if loaded.Data.VectorsPath != "/tmp/vectors.txt" {
		t.Errorf("loaded vectors path: got %s", loaded.Data.VectorsPath)
	}
	if loaded.Corpus.CacheTTL != 3*time.Minute {
		t.Errorf("loaded cache ttl: got %s", loaded.Corpus.CacheTTL)
	}
}
