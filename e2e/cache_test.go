package e2e

import (
	"testing"
	"time"

	esql "github.com/billz-2/esql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryResultCache(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	index := "e2e_employees_cache"
	seedEmployees(t, index)

	cache, err := esql.NewCache(esql.CacheConfig{
		Redis: redisClient,
		TTL:   time.Minute,
	})
	require.NoError(t, err)

	entry, err := registry.GetEntry("tier-gold")
	require.NoError(t, err)

	cached, err := esql.NewClient(entry.ES, entry.BaseURL, esql.WithCache(cache))
	require.NoError(t, err)

	req := &esql.QueryRequest{
		Query: "FROM " + index + "\n| SORT last_name\n| LIMIT 10",
	}

	// Cold: served by the cluster, stored in the background.
	rs, err := cached.Query(ctx, req)
	require.NoError(t, err)
	require.Len(t, rs.Values, 3)

	assert.Eventually(t, func() bool {
		_, ok := cache.Get(ctx, req)
		return ok
	}, 5*time.Second, 100*time.Millisecond, "result was not cached")

	// Warm: identical request returns the identical result set.
	warm, err := cached.Query(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, rs.Columns, warm.Columns)
	assert.Equal(t, rs.Values, warm.Values)

	// Different params mean a different cache entry.
	paramReq := &esql.QueryRequest{
		Query:  "FROM " + index + "\n| WHERE first_name == ?\n| LIMIT 10",
		Params: []any{"Maria"},
	}
	_, ok := cache.Get(ctx, paramReq)
	assert.False(t, ok)

	// Invalidation drops the entry.
	require.NoError(t, cache.Invalidate(ctx, req))
	_, ok = cache.Get(ctx, req)
	assert.False(t, ok)
}
