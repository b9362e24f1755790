package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360studio/semmls/annotation"
	"github.com/c360studio/semmls/config"
	"github.com/c360studio/semmls/graph"
	"github.com/c360studio/semmls/provenance"
	"github.com/c360studio/semmls/storage"
)

// App wires the configured annotation store and provenance source together.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	store    storage.Store
	exporter provenance.Exporter
	closers  []func() error
}

// NewApp opens the backends named in cfg.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{cfg: cfg, logger: logger}

	if err := a.openStore(ctx); err != nil {
		return nil, err
	}
	if err := a.openExporter(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.cfg.Storage.Backend {
	case storage.BackendNATS:
		kv, err := storage.ConnectKV(ctx, a.cfg.Storage.NATS.URL, a.cfg.Storage.NATS.Bucket)
		if err != nil {
			return wrapNATSError(err, a.cfg.Storage.NATS.URL)
		}
		a.store = kv
		a.closers = append(a.closers, kv.Close)
		a.logger.Debug("Using NATS annotation store", slog.String("url", a.cfg.Storage.NATS.URL))
	case storage.BackendFile:
		a.store = storage.NewFileStore(a.cfg.AnnotationsFile())
		a.logger.Debug("Using file annotation store", slog.String("path", a.cfg.AnnotationsFile()))
	default:
		return fmt.Errorf("%w: %s", storage.ErrUnknownBackend, a.cfg.Storage.Backend)
	}
	return nil
}

func (a *App) openExporter() error {
	switch a.cfg.Graph.Source {
	case provenance.SourceNeo4j:
		n := a.cfg.Neo4j
		runner, err := provenance.NewNeo4jRunner(n.URI, n.Username, n.Password, n.Database)
		if err != nil {
			return err
		}
		a.exporter = provenance.NewNeo4jExporter(runner, a.logger)
		a.closers = append(a.closers, func() error { return runner.Close(context.Background()) })
	case provenance.SourceFile:
		a.exporter = provenance.NewFileExporter(a.cfg.GraphFile(), a.logger)
	default:
		return fmt.Errorf("unknown graph source: %s", a.cfg.Graph.Source)
	}
	return nil
}

// Collector returns a collector over the project's metadata folder.
func (a *App) Collector() *annotation.Collector {
	return annotation.NewCollector(a.cfg.MetadataPath(),
		annotation.WithPattern(a.cfg.Project.AnnotationPattern),
		annotation.WithLogger(a.logger))
}

// Build merges the provenance graph with the stored annotations.
func (a *App) Build(ctx context.Context, revision string, paths []string) (*graph.Graph, error) {
	b := graph.NewBuilder(a.exporter,
		graph.WithStore(a.store),
		graph.WithHostRewrite(a.cfg.Graph.SourceHost, a.cfg.Graph.Host),
		graph.WithBaseIRI(a.cfg.Graph.BaseIRI),
		graph.WithLogger(a.logger))

	g, err := b.Build(ctx, revision, paths)
	if errors.Is(err, graph.ErrGraphUnavailable) {
		return nil, a.graphUnavailable()
	}
	return g, err
}

func (a *App) graphUnavailable() error {
	where := a.cfg.GraphFile()
	if a.cfg.Graph.Source == provenance.SourceNeo4j {
		where = a.cfg.Neo4j.URI
	}
	return fmt.Errorf(`%w!
Please export the project's provenance graph to %s to create it`, graph.ErrGraphUnavailable, where)
}

// Close releases backend resources.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	// Check for common connection errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS:
  docker compose up -d nats

Or set storage.backend to "file" in semmls.yaml.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}
