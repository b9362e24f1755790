package provenance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// FileExporter reads a JSON-LD graph written by the host engine.
type FileExporter struct {
	path   string
	logger *slog.Logger
}

// NewFileExporter creates an exporter for the graph file at path.
func NewFileExporter(path string, logger *slog.Logger) *FileExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileExporter{path: path, logger: logger}
}

// Path returns the graph file.
func (e *FileExporter) Path() string {
	return e.path
}

// Export reads the graph file. The file always holds the current graph, so a revision
// other than HEAD is logged and otherwise not applied.
func (e *FileExporter) Export(ctx context.Context, revision string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(e.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrGraphUnavailable
		}
		return nil, fmt.Errorf("read provenance graph: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrGraphUnavailable
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode provenance graph %s: %w", e.path, err)
	}

	if revision != "" && revision != "HEAD" {
		e.logger.Debug("Graph file holds the current revision only",
			slog.String("requested", revision),
			slog.String("path", e.path))
	}

	return &Document{Revision: revision, Source: e.path, Data: doc}, nil
}
