package annotation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Document is one pending metadata document read from the metadata folder.
type Document struct {
	// Name is the file name inside the folder.
	Name string
	// Body is the decoded JSON-LD document.
	Body map[string]any
}

// ModelID returns the document's "@id".
func (d Document) ModelID() string {
	id, _ := d.Body["@id"].(string)
	return id
}

// Drain reads every pending document in dir whose name matches pattern and removes each
// file once it has been parsed and found to carry an "@id".
//
// Drain is at-most-once and not transactional: files are deleted before the caller has
// persisted anything, and a failure on a later file discards the documents already
// drained. A missing directory yields no documents. Files are processed in directory
// order (lexical by name).
func Drain(dir, pattern string) ([]Document, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid document pattern %q", pattern)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read metadata folder: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ok, _ := doublestar.Match(pattern, entry.Name()); !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		doc, err := readDocument(path)
		if err != nil {
			return nil, err
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("consume %s: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func readDocument(path string) (Document, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", name, err)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", ErrMalformedAnnotation, name, err)
	}

	doc := Document{Name: name, Body: body}
	if doc.ModelID() == "" {
		return Document{}, fmt.Errorf("%w: %s has no @id", ErrMalformedAnnotation, name)
	}
	return doc, nil
}
