package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/c360studio/semmls/annotation"
)

// FileStore keeps annotations as JSON lines in a single append-only file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path. The file and its parent
// directory are created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Save appends the annotation to the file.
func (s *FileStore) Save(ctx context.Context, a *annotation.Annotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal annotation: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create annotation directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open annotation file: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("store annotation: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync annotation file: %w", err)
	}
	return f.Close()
}

// Get returns the latest record for id.
func (s *FileStore) Get(ctx context.Context, id string) (*annotation.Annotation, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

// List returns annotations in the order they were first saved. A later record with
// the same id replaces the earlier one in place.
func (s *FileStore) List(ctx context.Context) ([]*annotation.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open annotation file: %w", err)
	}
	defer f.Close()

	var out []*annotation.Annotation
	index := make(map[string]int)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var a annotation.Annotation
		if err := json.Unmarshal(scanner.Bytes(), &a); err != nil {
			return nil, fmt.Errorf("unmarshal annotation at line %d: %w", line, err)
		}
		if i, ok := index[a.ID]; ok {
			out[i] = &a
			continue
		}
		index[a.ID] = len(out)
		out = append(out, &a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read annotation file: %w", err)
	}
	return out, nil
}

// Close is a no-op; the file is opened per operation.
func (s *FileStore) Close() error {
	return nil
}
