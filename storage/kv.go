package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/semmls/annotation"
)

// DefaultBucket is the KV bucket used when none is configured.
const DefaultBucket = "SEMMLS_ANNOTATIONS"

// KVStore provides annotation storage backed by NATS KV.
type KVStore struct {
	conn *nats.Conn
	kv   jetstream.KeyValue
}

// ConnectKV dials the NATS server at url and opens (or creates) the bucket.
func ConnectKV(ctx context.Context, url, bucket string) (*KVStore, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	store, err := NewKVStore(ctx, js, bucket)
	if err != nil {
		conn.Close()
		return nil, err
	}
	store.conn = conn
	return store, nil
}

// NewKVStore creates a KVStore with the given JetStream context.
// It creates the bucket if it doesn't exist.
func NewKVStore(ctx context.Context, js jetstream.JetStream, bucket string) (*KVStore, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	kv, err := getOrCreateBucket(ctx, js, bucket)
	if err != nil {
		return nil, fmt.Errorf("create annotations bucket: %w", err)
	}
	return &KVStore{kv: kv}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("semmls %s storage", strings.ToLower(name)),
		History:     5, // Keep last 5 revisions
	})
}

// Key maps an annotation id, which is an IRI, to a valid KV key.
func Key(id string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(id)).String()
}

// Save stores the annotation under Key(a.ID).
func (s *KVStore) Save(ctx context.Context, a *annotation.Annotation) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal annotation: %w", err)
	}
	if _, err := s.kv.Put(ctx, Key(a.ID), data); err != nil {
		return fmt.Errorf("store annotation: %w", err)
	}
	return nil
}

// Get retrieves an annotation by id.
func (s *KVStore) Get(ctx context.Context, id string) (*annotation.Annotation, error) {
	entry, err := s.kv.Get(ctx, Key(id))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get annotation: %w", err)
	}

	var a annotation.Annotation
	if err := json.Unmarshal(entry.Value(), &a); err != nil {
		return nil, fmt.Errorf("unmarshal annotation: %w", err)
	}
	return &a, nil
}

// List returns all annotations ordered by creation time, then id.
func (s *KVStore) List(ctx context.Context) ([]*annotation.Annotation, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list annotation keys: %w", err)
	}

	out := make([]*annotation.Annotation, 0, len(keys))
	for _, key := range keys {
		entry, err := s.kv.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get annotation %s: %w", key, err)
		}
		var a annotation.Annotation
		if err := json.Unmarshal(entry.Value(), &a); err != nil {
			return nil, fmt.Errorf("unmarshal annotation %s: %w", key, err)
		}
		out = append(out, &a)
	}

	sortAnnotations(out)
	return out, nil
}

// Close drains the connection opened by ConnectKV.
func (s *KVStore) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Drain()
}

func sortAnnotations(list []*annotation.Annotation) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound) ||
		(err != nil && strings.Contains(err.Error(), "key not found"))
}
