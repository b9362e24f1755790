// Package storage persists annotation records so the graph builder can fold them into
// the provenance graph on every report.
package storage

import (
	"context"

	"github.com/c360studio/semmls/annotation"
)

// Backend names accepted in configuration.
const (
	BackendFile = "file"
	BackendNATS = "nats"
)

// Store provides durable annotation storage.
type Store interface {
	// Save persists an annotation. Saving an id twice replaces the earlier record.
	Save(ctx context.Context, a *annotation.Annotation) error

	// Get returns the annotation with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*annotation.Annotation, error)

	// List returns every stored annotation in a deterministic order.
	List(ctx context.Context) ([]*annotation.Annotation, error)

	// Close releases backend resources.
	Close() error
}

// SaveAll persists annotations in order, stopping at the first failure.
func SaveAll(ctx context.Context, s Store, annotations []*annotation.Annotation) error {
	for _, a := range annotations {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Save(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
