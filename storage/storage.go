// Package storage persists the client's preferences and saved places as named JSON records.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Names of the persisted records
const (
	PreferencesKey = "weather-settings"
	SavedPlacesKey = "weather-saved-cities"
)

// ErrNotFound is returned by a Backend when a key has never been written
var ErrNotFound = errors.New("record not found")

// Backend is a minimal key-value store holding serialized records
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Record is a typed view over one key of a Backend
type Record[T any] struct {
	backend  Backend
	key      string
	defaults func() T
}

// NewRecord binds key to a backend. defaults supplies the value returned before the first save.
func NewRecord[T any](backend Backend, key string, defaults func() T) *Record[T] {
	return &Record[T]{backend: backend, key: key, defaults: defaults}
}

// Load returns the stored value, or the default when nothing has been saved yet
func (r *Record[T]) Load(ctx context.Context) (T, error) {
	raw, err := r.backend.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return r.defaults(), nil
	}
	if err != nil {
		return r.defaults(), fmt.Errorf("load %s: %w", r.key, err)
	}

	v := r.defaults()
	if err := json.Unmarshal(raw, &v); err != nil {
		return r.defaults(), fmt.Errorf("decode %s: %w", r.key, err)
	}
	return v, nil
}

// Save serializes and stores v
func (r *Record[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.backend.Put(ctx, r.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", r.key, err)
	}
	return nil
}

// Open creates a backend from a "kind:path" location such as "file:<dir>", "sqlite:<path>" or "memory"
func Open(location string) (Backend, error) {
	kind, path, _ := strings.Cut(location, ":")
	switch kind {
	case "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(path)
	case "sqlite":
		return NewSQLite(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", kind)
}
