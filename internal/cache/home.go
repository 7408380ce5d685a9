// Package cache implements the session-scoped home-page cache.
//
// The store is constructed once at startup and handed to whatever needs home
// data; nothing reaches into ambient global state. The cached value is the
// raw API payload, so every read reshapes the same underlying data.
package cache

import (
	"context"
	"sync"

	"github.com/hanshat/infinitunes/internal/models"
	"github.com/hanshat/infinitunes/internal/services"
)

// HomeStore is a read-through cache over [services.Catalog.Home]. The mutex
// guards only the stored payload: two concurrent misses may both fetch and
// the last writer wins. That duplicate fetch is accepted; the store makes no
// at-most-once guarantee.
type HomeStore struct {
	mu      sync.Mutex
	payload *models.HomePayload
	catalog services.Catalog
}

// NewHomeStore creates a HomeStore backed by the given catalog.
func NewHomeStore(catalog services.Catalog) *HomeStore {
	return &HomeStore{catalog: catalog}
}

// Get returns the reshaped home aggregate, fetching and caching the raw
// payload on a miss. Fetch errors propagate to the caller. A cached-but-nil
// payload yields (nil, nil) rather than an error.
func (s *HomeStore) Get(ctx context.Context) (*models.Home, error) {
	s.mu.Lock()
	payload := s.payload
	s.mu.Unlock()

	if payload == nil {
		fetched, err := s.catalog.Home(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.payload = fetched
		s.mu.Unlock()
		payload = fetched
	}

	if payload == nil {
		return nil, nil
	}

	return payload.Reshape(), nil
}

// Set replaces the cached payload.
func (s *HomeStore) Set(payload *models.HomePayload) {
	s.mu.Lock()
	s.payload = payload
	s.mu.Unlock()
}

// Invalidate drops the cached payload so the next Get refetches.
func (s *HomeStore) Invalidate() {
	s.Set(nil)
}
