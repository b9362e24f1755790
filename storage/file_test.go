package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semmls/annotation"
)

func newAnnotation(id string, created time.Time) *annotation.Annotation {
	return &annotation.Annotation{
		ID:        id,
		Activity:  "https://localhost/activities/1",
		Source:    annotation.Source,
		Body:      map[string]any{"@id": "m1"},
		CreatedAt: created,
	}
}

func TestFileStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "annotations.jsonl")
	store := NewFileStore(path)

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, SaveAll(ctx, store, []*annotation.Annotation{
		newAnnotation("a", now),
		newAnnotation("b", now),
	}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.True(t, list[0].CreatedAt.Equal(now))
	assert.Equal(t, "m1", list[0].Body["@id"])
}

func TestFileStore_LaterRecordWins(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "annotations.jsonl"))
	now := time.Now().UTC()

	require.NoError(t, store.Save(ctx, newAnnotation("a", now)))
	require.NoError(t, store.Save(ctx, newAnnotation("b", now)))

	updated := newAnnotation("a", now)
	updated.Body = map[string]any{"@id": "m2"}
	require.NoError(t, store.Save(ctx, updated))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "m2", list[0].Body["@id"])

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "m2", got.Body["@id"])
}

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "none.jsonl"))

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = store.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_CorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":\"a\"}\nnot json\n"), 0644))

	_, err := NewFileStore(path).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestSaveAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewFileStore(filepath.Join(t.TempDir(), "annotations.jsonl"))
	err := SaveAll(ctx, store, []*annotation.Annotation{newAnnotation("a", time.Now())})
	assert.ErrorIs(t, err, context.Canceled)
}
