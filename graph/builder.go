package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/semmls/annotation"
	"github.com/c360studio/semmls/provenance"
	"github.com/c360studio/semmls/storage"
	"github.com/c360studio/semmls/vocabulary/mls"
)

// ErrGraphUnavailable is returned by Build when no provenance graph has been generated.
var ErrGraphUnavailable = provenance.ErrGraphUnavailable

// DefaultBaseIRI resolves relative identifiers in exported documents.
const DefaultBaseIRI = "https://localhost/"

// Source labels recorded on triples.
const (
	SourceProvenance = "provenance"
	SourceAnnotation = annotation.Source
)

// Builder merges the exported provenance graph with stored annotations.
type Builder struct {
	exporter provenance.Exporter
	store    storage.Store
	ns       mls.Namespaces
	rewriter *HostRewriter
	base     string
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithStore adds the annotations held in store to every build.
func WithStore(store storage.Store) Option {
	return func(b *Builder) { b.store = store }
}

// WithNamespaces replaces the default namespace table.
func WithNamespaces(ns mls.Namespaces) Option {
	return func(b *Builder) { b.ns = ns }
}

// WithHostRewrite rewrites IRIs on sourceHost to host.
func WithHostRewrite(sourceHost, host string) Option {
	return func(b *Builder) { b.rewriter = &HostRewriter{from: sourceHost, to: host} }
}

// WithBaseIRI sets the base used for relative identifiers.
func WithBaseIRI(base string) Option {
	return func(b *Builder) { b.base = base }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// NewBuilder creates a builder over exporter.
func NewBuilder(exporter provenance.Exporter, opts ...Option) *Builder {
	b := &Builder{
		exporter: exporter,
		ns:       mls.DefaultNamespaces(),
		base:     DefaultBaseIRI,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.rewriter != nil {
		b.rewriter = NewHostRewriter(b.rewriter.from, b.rewriter.to, b.ns)
	}
	return b
}

// Namespaces returns the builder's namespace table.
func (b *Builder) Namespaces() mls.Namespaces {
	return b.ns
}

// Build exports the provenance graph at revision and merges every stored annotation
// into it. Paths are not applied while building; filtering happens on query results.
// A missing provenance graph fails with ErrGraphUnavailable before anything is read
// from the annotation store.
func (b *Builder) Build(ctx context.Context, revision string, paths []string) (*Graph, error) {
	doc, err := b.exporter.Export(ctx, revision)
	if err != nil {
		if errors.Is(err, provenance.ErrGraphUnavailable) {
			return nil, ErrGraphUnavailable
		}
		return nil, err
	}
	if len(paths) > 0 {
		b.logger.Debug("Path filter is applied after querying", slog.Any("paths", paths))
	}

	g := New(b.ns)
	ts := b.now().UTC()

	if err := b.merge(g, doc.Data, SourceProvenance, ts); err != nil {
		return nil, fmt.Errorf("merge provenance graph: %w", err)
	}

	var count int
	if b.store != nil {
		annotations, err := b.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load annotations: %w", err)
		}
		for _, a := range annotations {
			if err := b.merge(g, a.JSONLD(b.ns), SourceAnnotation, ts); err != nil {
				return nil, fmt.Errorf("merge annotation %s: %w", a.ID, err)
			}
		}
		count = len(annotations)
	}

	b.logger.Debug("Built provenance graph",
		slog.String("revision", revision),
		slog.String("source", doc.Source),
		slog.Int("annotations", count),
		slog.Int("triples", g.Len()))
	return g, nil
}

func (b *Builder) merge(g *Graph, doc any, source string, ts time.Time) error {
	quads, err := toQuads(doc, b.base)
	if err != nil {
		return err
	}
	for _, q := range quads {
		s, o := q.subject, q.object
		if b.rewriter != nil {
			s, o = b.rewriter.Term(s), b.rewriter.Term(o)
		}
		g.Add(s, q.predicate, o, source, ts)
	}
	return nil
}
