package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/hbnb-web/internal/domain/providers"
)

// PageStore keeps one ResourceCache per page view. Every full navigation
// opens a new view; abandoned views expire with the provider TTL.
type PageStore struct {
	provider providers.CacheProvider
	ttl      time.Duration
}

// NewPageStore creates a page store backed by provider
func NewPageStore(provider providers.CacheProvider, ttl time.Duration) *PageStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &PageStore{provider: provider, ttl: ttl}
}

// NewView starts a fresh, empty page view
func (s *PageStore) NewView() (string, *ResourceCache) {
	return uuid.NewString(), NewResourceCache()
}

// Load returns the cache of an existing view. found is false when the view
// is unknown or expired.
func (s *PageStore) Load(ctx context.Context, viewID string) (*ResourceCache, bool, error) {
	if _, err := uuid.Parse(viewID); err != nil {
		return nil, false, nil
	}

	data, err := s.provider.Get(ctx, viewKey(viewID))
	if err != nil {
		if providers.IsCacheMiss(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	c := NewResourceCache()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, false, fmt.Errorf("corrupt view %s: %w", viewID, err)
	}
	return c, true, nil
}

// Save stores the cache of a view
func (s *PageStore) Save(ctx context.Context, viewID string, c *ResourceCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.provider.Set(ctx, viewKey(viewID), data, int(s.ttl.Seconds()))
}

// SaveLatest records c as the last successfully fetched public snapshot
func (s *PageStore) SaveLatest(ctx context.Context, c *ResourceCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.provider.Set(ctx, latestKey, data, int(s.ttl.Seconds()))
}

// Latest returns the last snapshot recorded by SaveLatest. Pages fall back
// to it when a fetch fails so earlier content stays visible.
func (s *PageStore) Latest(ctx context.Context) (*ResourceCache, bool, error) {
	data, err := s.provider.Get(ctx, latestKey)
	if err != nil {
		if providers.IsCacheMiss(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	c := NewResourceCache()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, false, fmt.Errorf("corrupt latest snapshot: %w", err)
	}
	return c, true, nil
}

// Discard drops a view
func (s *PageStore) Discard(ctx context.Context, viewID string) error {
	return s.provider.Delete(ctx, viewKey(viewID))
}

const latestKey = "view:latest"

func viewKey(viewID string) string {
	return "view:" + viewID
}
