// Package cache holds page-scoped snapshots of fetched resource collections.
// A snapshot is replaced wholesale by each fetch and is the only input of
// client-side filtering.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Kind names a resource collection
type Kind string

const (
	KindPlaces    Kind = "places"
	KindReviews   Kind = "reviews"
	KindAmenities Kind = "amenities"
	KindUsers     Kind = "users"
)

// ResourceCache holds at most one collection per kind. Collections are
// stored encoded so readers always receive an independent copy.
type ResourceCache struct {
	mu      sync.RWMutex
	entries map[Kind]json.RawMessage
}

// NewResourceCache creates an empty cache
func NewResourceCache() *ResourceCache {
	return &ResourceCache{entries: make(map[Kind]json.RawMessage)}
}

// Put replaces the snapshot for kind
func Put[T any](c *ResourceCache, kind Kind, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to snapshot %s: %w", kind, err)
	}

	c.mu.Lock()
	c.entries[kind] = data
	c.mu.Unlock()
	return nil
}

// Get returns a copy of the snapshot for kind, empty when unset
func Get[T any](c *ResourceCache, kind Kind) ([]T, error) {
	c.mu.RLock()
	data, ok := c.entries[kind]
	c.mu.RUnlock()

	items := []T{}
	if !ok {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to read %s snapshot: %w", kind, err)
	}
	return items, nil
}

// Has reports whether a snapshot exists for kind
func (c *ResourceCache) Has(kind Kind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[kind]
	return ok
}

// Reset drops every snapshot
func (c *ResourceCache) Reset() {
	c.mu.Lock()
	c.entries = make(map[Kind]json.RawMessage)
	c.mu.Unlock()
}

// MarshalJSON encodes every snapshot for storage
func (c *ResourceCache) MarshalJSON() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return json.Marshal(c.entries)
}

// UnmarshalJSON restores snapshots written by MarshalJSON
func (c *ResourceCache) UnmarshalJSON(data []byte) error {
	entries := make(map[Kind]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	return nil
}
