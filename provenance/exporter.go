// Package provenance reads the base execution-provenance graph produced by the host
// engine. The graph is handed over as a JSON-LD document so it can be merged with
// annotation records before querying.
package provenance

import (
	"context"
	"errors"
)

// ErrGraphUnavailable is returned when no provenance graph has been generated yet.
var ErrGraphUnavailable = errors.New("provenance graph has not been generated")

// Source names accepted in configuration.
const (
	SourceFile  = "file"
	SourceNeo4j = "neo4j"
)

// Document is an exported provenance graph.
type Document struct {
	// Revision is the revision the export was requested for.
	Revision string
	// Source describes where the graph was read from.
	Source string
	// Data is the graph as a decoded JSON-LD value (object or array).
	Data any
}

// Exporter exports the full provenance graph for all tracked objects.
type Exporter interface {
	// Export returns the graph at revision, or ErrGraphUnavailable.
	Export(ctx context.Context, revision string) (*Document, error)
}
