// Package annotation folds pending per-run ML metadata documents into annotation records
// bound to the run's provenance activity.
package annotation

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/c360studio/semmls/vocabulary/mls"
)

// Source is recorded as the creator of every annotation this package produces.
const Source = "MLS plugin"

// Annotation binds a run's activity to an arbitrary metadata document.
type Annotation struct {
	ID        string         `json:"id"`
	Activity  string         `json:"activity"`
	Source    string         `json:"source"`
	Body      map[string]any `json:"body"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewID returns the annotation id for a model document attached to an activity.
func NewID(activityID, modelID string) string {
	return fmt.Sprintf("%s/annotations/mls/%s", activityID, modelID)
}

// JSONLD renders the annotation as a Web Annotation node whose body is the metadata
// document itself. The document's own @context, if any, takes precedence over ns.
func (a *Annotation) JSONLD(ns mls.Namespaces) map[string]any {
	return map[string]any{
		"@context":        ns.Context(),
		"@id":             a.ID,
		"@type":           ns.Compact(mls.ClassAnnotation),
		"oa:hasTarget":    map[string]any{"@id": a.Activity},
		"oa:hasBody":      a.Body,
		"dcterms:creator": a.Source,
	}
}

// Collector turns the documents pending in a metadata folder into annotations.
type Collector struct {
	dir     string
	pattern string
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Collector.
type Option func(*Collector)

// WithPattern restricts collection to file names matching a doublestar pattern.
func WithPattern(pattern string) Option {
	return func(c *Collector) { c.pattern = pattern }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) { c.logger = logger }
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

// NewCollector creates a collector over the metadata folder dir.
func NewCollector(dir string, opts ...Option) *Collector {
	c := &Collector{
		dir:     dir,
		pattern: "*",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Dir returns the metadata folder.
func (c *Collector) Dir() string {
	return c.dir
}

// Collect drains the metadata folder and returns one annotation per document, in
// directory order. Source documents are deleted during collection; callers must persist
// the result before producing further documents. A document without "@id" aborts
// collection with ErrMalformedAnnotation.
func (c *Collector) Collect(activityID string) ([]*Annotation, error) {
	docs, err := Drain(c.dir, c.pattern)
	if err != nil {
		return nil, fmt.Errorf("collect annotations for %s: %w", activityID, err)
	}

	annotations := make([]*Annotation, 0, len(docs))
	for _, doc := range docs {
		a := &Annotation{
			ID:        NewID(activityID, doc.ModelID()),
			Activity:  activityID,
			Source:    Source,
			Body:      doc.Body,
			CreatedAt: c.now().UTC(),
		}
		c.logger.Debug("Consumed metadata document",
			slog.String("file", filepath.Join(c.dir, doc.Name)),
			slog.String("annotation", a.ID))
		annotations = append(annotations, a)
	}
	return annotations, nil
}
