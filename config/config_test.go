package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Project.MetadataDir != ".semmls/mls/common" {
		t.Errorf("expected default metadata dir .semmls/mls/common, got %s", cfg.Project.MetadataDir)
	}
	if cfg.Graph.Source != "file" {
		t.Errorf("expected default graph source file, got %s", cfg.Graph.Source)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("expected default storage backend file, got %s", cfg.Storage.Backend)
	}
	if cfg.Report.Metric != "accuracy" {
		t.Errorf("expected default metric accuracy, got %s", cfg.Report.Metric)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing metadata dir",
			modify:  func(c *Config) { c.Project.MetadataDir = "" },
			wantErr: true,
		},
		{
			name:    "unknown graph source",
			modify:  func(c *Config) { c.Graph.Source = "sparql" },
			wantErr: true,
		},
		{
			name:    "neo4j without uri",
			modify:  func(c *Config) { c.Graph.Source = "neo4j"; c.Neo4j.URI = "" },
			wantErr: true,
		},
		{
			name:    "neo4j source",
			modify:  func(c *Config) { c.Graph.Source = "neo4j" },
			wantErr: false,
		},
		{
			name:    "unknown storage backend",
			modify:  func(c *Config) { c.Storage.Backend = "s3" },
			wantErr: true,
		},
		{
			name:    "nats without url",
			modify:  func(c *Config) { c.Storage.Backend = "nats"; c.Storage.NATS.URL = "" },
			wantErr: true,
		},
		{
			name:    "missing metric",
			modify:  func(c *Config) { c.Report.Metric = "" },
			wantErr: true,
		},
		{
			name:    "markdown format",
			modify:  func(c *Config) { c.Report.Format = "Markdown" },
			wantErr: false,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Report.Format = "html" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
project:
  path: "/test/project"
  graph_path: "graph.json"
graph:
  source_host: "renku.example.com"
  host: "localhost"
storage:
  backend: "nats"
  nats:
    url: "nats://test:4222"
report:
  metric: "f1"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Project.Path != "/test/project" {
		t.Errorf("expected project path /test/project, got %s", cfg.Project.Path)
	}
	if cfg.GraphFile() != filepath.Join("/test/project", "graph.json") {
		t.Errorf("expected graph file under project, got %s", cfg.GraphFile())
	}
	if cfg.Project.MetadataDir != ".semmls/mls/common" {
		t.Errorf("expected default metadata dir to survive, got %s", cfg.Project.MetadataDir)
	}
	if cfg.Graph.SourceHost != "renku.example.com" || cfg.Graph.Host != "localhost" {
		t.Errorf("unexpected host rewrite %q -> %q", cfg.Graph.SourceHost, cfg.Graph.Host)
	}
	if cfg.Storage.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.Storage.NATS.URL)
	}
	if cfg.Storage.NATS.Bucket != "SEMMLS_ANNOTATIONS" {
		t.Errorf("expected default bucket, got %s", cfg.Storage.NATS.Bucket)
	}
	if cfg.Report.Metric != "f1" {
		t.Errorf("expected metric f1, got %s", cfg.Report.Metric)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("project: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadOverlay(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("report:\n  metric: f1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOverlay(configPath)
	if err != nil {
		t.Fatalf("LoadOverlay() error = %v", err)
	}
	if cfg.Report.Metric != "f1" {
		t.Errorf("expected metric f1, got %s", cfg.Report.Metric)
	}
	if cfg.Report.Format != "" || cfg.Graph.Source != "" || cfg.Storage.Backend != "" {
		t.Errorf("overlay should leave unset keys empty, got format=%q source=%q backend=%q",
			cfg.Report.Format, cfg.Graph.Source, cfg.Storage.Backend)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Project: ProjectConfig{
			Path: "/override/path",
		},
		Report: ReportConfig{
			Metric: "f1",
		},
	}

	base.Merge(override)

	if base.Report.Metric != "f1" {
		t.Errorf("expected metric f1, got %s", base.Report.Metric)
	}
	// Format should remain from base since override didn't set it
	if base.Report.Format != "ascii" {
		t.Errorf("expected format to remain default, got %s", base.Report.Format)
	}
	if base.Project.Path != "/override/path" {
		t.Errorf("expected project path /override/path, got %s", base.Project.Path)
	}

	base.Merge(nil)
	if base.Project.Path != "/override/path" {
		t.Error("merging nil should not change the config")
	}
}

func TestConfigResolve(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Project.Path = "/project"

	if got := cfg.MetadataPath(); got != filepath.Join("/project", ".semmls/mls/common") {
		t.Errorf("MetadataPath() = %s", got)
	}
	if got := cfg.Resolve("/abs/file"); got != "/abs/file" {
		t.Errorf("absolute paths should not be joined, got %s", got)
	}
	if got := cfg.AnnotationsFile(); got != filepath.Join("/project", ".semmls/annotations.jsonl") {
		t.Errorf("AnnotationsFile() = %s", got)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Report.Metric = "roc_auc"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Report.Metric != "roc_auc" {
		t.Errorf("expected metric roc_auc, got %s", loaded.Report.Metric)
	}
}
