// Package cache is the shared cached query layer. Every remote collection or
// record the dashboard shows is addressed by a query key, fetched at most once
// concurrently, and explicitly invalidated after a mutation.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNotReady means a dependent query's discriminator has not resolved yet.
// The query is inert: no fetch was issued and no error state should be shown.
var ErrNotReady = errors.New("query dependency not resolved")

// Key addresses one cached value by resource kind and optional discriminator.
// Kind must not contain ':', the separator String joins on; a Kind with a
// colon would collide with a Kind+ID pair. The helpers in keys.go all use
// colon-free kinds.
type Key struct {
	Kind string
	ID   string
}

// NewKey builds a key without a discriminator
func NewKey(kind string) Key {
	return Key{Kind: kind}
}

// NewKeyID builds a key with a discriminator
func NewKeyID(kind, id string) Key {
	return Key{Kind: kind, ID: id}
}

func (k Key) String() string {
	if k.ID == "" {
		return k.Kind
	}
	return k.Kind + ":" + k.ID
}

type entry struct {
	value      any
	generation uint64
}

// Store memoizes fetch results by key with in-flight de-duplication
type Store struct {
	mu          sync.Mutex
	entries     map[string]entry
	generations map[string]uint64
	group       singleflight.Group
	logger      *zap.Logger
}

// New creates an empty store
func New(logger *zap.Logger) *Store {
	return &Store{
		entries:     make(map[string]entry),
		generations: make(map[string]uint64),
		logger:      logger,
	}
}

// Query returns the cached value for key, fetching it if absent or stale.
// Concurrent calls for the same key share a single in-flight fetch. A failed
// fetch is returned to the caller and never stored, so the next call retries.
func (s *Store) Query(ctx context.Context, key Key, fetch func(ctx context.Context) (any, error)) (any, error) {
	id := key.String()

	s.mu.Lock()
	if cached, ok := s.entries[id]; ok {
		s.mu.Unlock()
		return cached.value, nil
	}
	generation := s.generations[id]
	// Materialize the key so Clear and InvalidateKind can reach a fetch
	// that is in flight before anything was stored under it.
	s.generations[id] = generation
	s.mu.Unlock()

	value, err, shared := s.group.Do(id, func() (any, error) {
		result, err := fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", id, err)
		}

		s.mu.Lock()
		// A concurrent Invalidate bumped the generation: the result is
		// already stale, hand it to the caller but do not store it.
		if s.generations[id] == generation {
			s.entries[id] = entry{value: result, generation: generation}
		}
		s.mu.Unlock()
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("query de-duplicated", zap.String("key", id))
	}
	return value, nil
}

// Invalidate marks the entry stale so the next Query refetches. Invalidating
// an absent or already-stale entry is a no-op, so the call is idempotent.
func (s *Store) Invalidate(key Key) {
	id := key.String()

	s.mu.Lock()
	delete(s.entries, id)
	s.generations[id]++
	s.mu.Unlock()

	s.group.Forget(id)
	s.logger.Debug("query invalidated", zap.String("key", id))
}

// Clear drops every cached entry and marks every known key stale, used when
// the session identity changes. In-flight fetches started before the clear
// are forgotten, so a later Query cannot join them and their results are
// never stored.
func (s *Store) Clear() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.generations))
	for id := range s.entries {
		delete(s.entries, id)
	}
	for id := range s.generations {
		s.generations[id]++
		keys = append(keys, id)
	}
	s.mu.Unlock()

	for _, id := range keys {
		s.group.Forget(id)
	}
	s.logger.Debug("query cache cleared", zap.Int("keys", len(keys)))
}

// InvalidateKind marks every key of one kind stale, for collections whose
// discriminators are not known at the call site
func (s *Store) InvalidateKind(kind string) {
	prefix := kind + ":"

	s.mu.Lock()
	var keys []string
	for id := range s.generations {
		if id == kind || strings.HasPrefix(id, prefix) {
			delete(s.entries, id)
			s.generations[id]++
			keys = append(keys, id)
		}
	}
	s.mu.Unlock()

	for _, id := range keys {
		s.group.Forget(id)
	}
}

// Lookup is a typed wrapper around Store.Query
func Lookup[T any](ctx context.Context, s *Store, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := s.Query(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cached value for %s has unexpected type %T", key, value)
	}
	return typed, nil
}
