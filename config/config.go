// Package config provides configuration loading and management for semmls.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete semmls configuration
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Graph   GraphConfig   `yaml:"graph"`
	Storage StorageConfig `yaml:"storage"`
	Neo4j   Neo4jConfig   `yaml:"neo4j"`
	Report  ReportConfig  `yaml:"report"`
}

// ProjectConfig locates the project and its metadata files
type ProjectConfig struct {
	// Path is the project root (auto-detected from git if empty)
	Path string `yaml:"path"`
	// MetadataDir holds pending per-run metadata documents, relative to Path
	MetadataDir string `yaml:"metadata_dir"`
	// GraphPath is the exported provenance graph, relative to Path
	GraphPath string `yaml:"graph_path"`
	// AnnotationPattern selects which files in MetadataDir are consumed
	AnnotationPattern string `yaml:"annotation_pattern"`
}

// GraphConfig configures where the provenance graph comes from
type GraphConfig struct {
	// Source is "file" or "neo4j"
	Source string `yaml:"source"`
	// SourceHost is the host recorded in identifiers by the provenance engine
	SourceHost string `yaml:"source_host"`
	// Host replaces SourceHost in identifiers (empty = no rewriting)
	Host string `yaml:"host"`
	// BaseIRI resolves relative identifiers
	BaseIRI string `yaml:"base_iri"`
}

// StorageConfig configures annotation persistence
type StorageConfig struct {
	// Backend is "file" or "nats"
	Backend string `yaml:"backend"`
	// AnnotationsPath is the JSON lines file used by the file backend, relative to the project
	AnnotationsPath string     `yaml:"annotations_path"`
	NATS            NATSConfig `yaml:"nats"`
}

// NATSConfig configures the NATS KV backend
type NATSConfig struct {
	URL    string `yaml:"url"`
	Bucket string `yaml:"bucket"`
}

// Neo4jConfig configures the Neo4j graph source
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// ReportConfig holds report defaults
type ReportConfig struct {
	// Metric ranks the leaderboard (default: accuracy)
	Metric string `yaml:"metric"`
	// Format is "ascii" or "markdown"
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			Path:              "", // Auto-detect
			MetadataDir:       ".semmls/mls/common",
			GraphPath:         ".semmls/provenance.json",
			AnnotationPattern: "*",
		},
		Graph: GraphConfig{
			Source:  "file",
			BaseIRI: "https://localhost/",
		},
		Storage: StorageConfig{
			Backend:         "file",
			AnnotationsPath: ".semmls/annotations.jsonl",
			NATS: NATSConfig{
				URL:    "nats://127.0.0.1:4222",
				Bucket: "SEMMLS_ANNOTATIONS",
			},
		},
		Neo4j: Neo4jConfig{
			URI:      "neo4j://localhost:7687",
			Username: "neo4j",
			Database: "neo4j",
		},
		Report: ReportConfig{
			Metric: "accuracy",
			Format: "ascii",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Project.MetadataDir == "" {
		return fmt.Errorf("project.metadata_dir is required")
	}
	switch c.Graph.Source {
	case "file":
		if c.Project.GraphPath == "" {
			return fmt.Errorf("project.graph_path is required for the file graph source")
		}
	case "neo4j":
		if c.Neo4j.URI == "" {
			return fmt.Errorf("neo4j.uri is required for the neo4j graph source")
		}
	default:
		return fmt.Errorf("graph.source must be file or neo4j, got %q", c.Graph.Source)
	}
	switch c.Storage.Backend {
	case "file":
		if c.Storage.AnnotationsPath == "" {
			return fmt.Errorf("storage.annotations_path is required for the file backend")
		}
	case "nats":
		if c.Storage.NATS.URL == "" {
			return fmt.Errorf("storage.nats.url is required for the nats backend")
		}
	default:
		return fmt.Errorf("storage.backend must be file or nats, got %q", c.Storage.Backend)
	}
	if c.Report.Metric == "" {
		return fmt.Errorf("report.metric is required")
	}
	switch strings.ToLower(c.Report.Format) {
	case "ascii", "markdown":
	default:
		return fmt.Errorf("report.format must be ascii or markdown, got %q", c.Report.Format)
	}
	return nil
}

// Resolve returns path joined to the project root unless it is absolute.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Project.Path, path)
}

// MetadataPath returns the folder holding pending metadata documents.
func (c *Config) MetadataPath() string {
	return c.Resolve(c.Project.MetadataDir)
}

// GraphFile returns the exported provenance graph file.
func (c *Config) GraphFile() string {
	return c.Resolve(c.Project.GraphPath)
}

// AnnotationsFile returns the file used by the file storage backend.
func (c *Config) AnnotationsFile() string {
	return c.Resolve(c.Storage.AnnotationsPath)
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadOverlay loads a YAML file without defaults, so only the keys it sets are non-zero.
// The Loader merges overlays onto a single DefaultConfig.
func LoadOverlay(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Project
	mergeString(&c.Project.Path, other.Project.Path)
	mergeString(&c.Project.MetadataDir, other.Project.MetadataDir)
	mergeString(&c.Project.GraphPath, other.Project.GraphPath)
	mergeString(&c.Project.AnnotationPattern, other.Project.AnnotationPattern)

	// Graph
	mergeString(&c.Graph.Source, other.Graph.Source)
	mergeString(&c.Graph.SourceHost, other.Graph.SourceHost)
	mergeString(&c.Graph.Host, other.Graph.Host)
	mergeString(&c.Graph.BaseIRI, other.Graph.BaseIRI)

	// Storage
	mergeString(&c.Storage.Backend, other.Storage.Backend)
	mergeString(&c.Storage.AnnotationsPath, other.Storage.AnnotationsPath)
	mergeString(&c.Storage.NATS.URL, other.Storage.NATS.URL)
	mergeString(&c.Storage.NATS.Bucket, other.Storage.NATS.Bucket)

	// Neo4j
	mergeString(&c.Neo4j.URI, other.Neo4j.URI)
	mergeString(&c.Neo4j.Username, other.Neo4j.Username)
	mergeString(&c.Neo4j.Password, other.Neo4j.Password)
	mergeString(&c.Neo4j.Database, other.Neo4j.Database)

	// Report
	mergeString(&c.Report.Metric, other.Report.Metric)
	mergeString(&c.Report.Format, other.Report.Format)
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
