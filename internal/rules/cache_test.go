package rules

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ledgerlift/ledgerlift/internal/common"
	"github.com/ledgerlift/ledgerlift/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	rules   map[string][]model.ClassificationRule
	err     error
	fetches atomic.Int64
}

func (s *countingStore) GetClassificationRules(_ context.Context, userID string) ([]model.ClassificationRule, error) {
	s.fetches.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.rules[userID], nil
}

func testRules(category string) []model.ClassificationRule {
	return []model.ClassificationRule{
		{ID: "r1", Category: category, Keywords: []string{"coffee"}, Direction: model.DirectionAny},
	}
}

func TestCacheServesWithinTTL(t *testing.T) {
	store := &countingStore{rules: map[string][]model.ClassificationRule{"u1": testRules("Meals")}}
	cache := NewCache(store)

	ctx := context.Background()
	first, err := cache.GetRules(ctx, "u1")
	require.NoError(t, err)
	second, err := cache.GetRules(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), store.fetches.Load(), "second call within TTL must not fetch")
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	store := &countingStore{rules: map[string][]model.ClassificationRule{"u1": testRules("Meals")}}
	cache := NewCacheWithTTL(store, 60*time.Second)

	current := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	ctx := context.Background()
	_, err := cache.GetRules(ctx, "u1")
	require.NoError(t, err)

	current = current.Add(59 * time.Second)
	_, err = cache.GetRules(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), store.fetches.Load())

	current = current.Add(2 * time.Second)
	_, err = cache.GetRules(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.fetches.Load(), "entry past TTL must refetch")
}

func TestCacheClearForcesRefetch(t *testing.T) {
	store := &countingStore{rules: map[string][]model.ClassificationRule{"u1": testRules("Meals")}}
	cache := NewCache(store)

	ctx := context.Background()
	_, err := cache.GetRules(ctx, "u1")
	require.NoError(t, err)

	cache.Clear("u1")

	_, err = cache.GetRules(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.fetches.Load(), "clear must invalidate within TTL")
}

func TestCacheClearAll(t *testing.T) {
	store := &countingStore{rules: map[string][]model.ClassificationRule{
		"u1": testRules("Meals"),
		"u2": testRules("Utilities"),
	}}
	cache := NewCache(store)

	ctx := context.Background()
	_, _ = cache.GetRules(ctx, "u1")
	_, _ = cache.GetRules(ctx, "u2")
	require.Equal(t, int64(2), store.fetches.Load())

	cache.ClearAll()

	_, _ = cache.GetRules(ctx, "u1")
	_, _ = cache.GetRules(ctx, "u2")
	assert.Equal(t, int64(4), store.fetches.Load())
}

func TestCachePerUserIsolation(t *testing.T) {
	store := &countingStore{rules: map[string][]model.ClassificationRule{
		"u1": testRules("Meals"),
		"u2": testRules("Utilities"),
	}}
	cache := NewCache(store)

	ctx := context.Background()
	_, _ = cache.GetRules(ctx, "u1")
	_, _ = cache.GetRules(ctx, "u2")

	cache.Clear("u1")

	u2, err := cache.GetRules(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, "Utilities", u2[0].Category)
	assert.Equal(t, int64(2), store.fetches.Load(), "clearing u1 must not evict u2")
}

func TestCachePropagatesStoreError(t *testing.T) {
	store := &countingStore{err: errors.New("store unavailable")}
	cache := NewCache(store)

	_, err := cache.GetRules(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrRuleFetchFailed)

	// A failed fetch must not poison the cache with an entry.
	store.err = nil
	store.rules = map[string][]model.ClassificationRule{"u1": testRules("Meals")}
	rules, err := cache.GetRules(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestCacheConcurrentAccess(t *testing.T) {
	store := &countingStore{rules: map[string][]model.ClassificationRule{
		"u1": testRules("Meals"),
		"u2": testRules("Utilities"),
	}}
	cache := NewCache(store)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := "u1"
			if i%2 == 0 {
				userID = "u2"
			}
			rules, err := cache.GetRules(context.Background(), userID)
			assert.NoError(t, err)
			assert.Len(t, rules, 1)
			if i%10 == 0 {
				cache.Clear(userID)
			}
		}(i)
	}
	wg.Wait()
}
