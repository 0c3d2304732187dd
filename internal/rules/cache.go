package rules

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/model"
)

// DefaultTTL bounds how long a cached rule set may serve before a fresh
// fetch. The TTL is a safety net; the owning system clears the cache
// explicitly after every rule mutation.
const DefaultTTL = 60 * time.Second

type cacheEntry struct {
	fetchedAt time.Time
	rules     []model.ClassificationRule
}

// Cache is a time-bounded, per-user cache of classification rules. Entries
// are replaced wholesale, never partially updated. Safe for concurrent use
// by parallel classification calls; a miss triggers one upstream fetch per
// call (concurrent misses are not de-duplicated).
type Cache struct {
	store   Store
	now     func() time.Time
	entries map[string]cacheEntry
	ttl     time.Duration
	mu      sync.Mutex
}

// NewCache creates a rule cache over the given store with the default TTL.
func NewCache(store Store) *Cache {
	return NewCacheWithTTL(store, DefaultTTL)
}

// NewCacheWithTTL creates a rule cache with a custom TTL.
func NewCacheWithTTL(store Store, ttl time.Duration) *Cache {
	return &Cache{
		store:   store,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// GetRules returns the user's rules, serving from cache while the entry is
// fresh and fetching from the store otherwise. The fetch honors ctx; this
// is the only suspension point in a classification call.
func (c *Cache) GetRules(ctx context.Context, userID string) ([]model.ClassificationRule, error) {
	c.mu.Lock()
	if entry, ok := c.entries[userID]; ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		rules := entry.rules
		c.mu.Unlock()
		return rules, nil
	}
	c.mu.Unlock()

	rules, err := c.store.GetClassificationRules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRuleFetchFailed, err)
	}

	c.mu.Lock()
	c.entries[userID] = cacheEntry{rules: rules, fetchedAt: c.now()}
	c.mu.Unlock()

	return rules, nil
}

// Clear removes one user's cached rules. Call immediately after any rule
// mutation so stale rules never outlive the mutation.
func (c *Cache) Clear(userID string) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
}

// ClearAll drops every cached entry.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
