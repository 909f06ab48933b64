package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteCache_Expiry(t *testing.T) {
	cache, err := OpenSQLiteCache(filepath.Join(t.TempDir(), "pages.db"), time.Minute)
	require.NoError(t, err)
	defer cache.Close()

	now := time.Unix(1_700_000_000, 0)
	cache.now = func() time.Time { return now }

	key := cacheKey("cat", 1, 40)
	require.NoError(t, cache.Put(key, []byte(`{"total":0}`)))

	body, ok, err := cache.Get(key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"total":0}`, string(body))

	now = now.Add(2 * time.Minute)
	_, ok, err = cache.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Purge())
}

func TestCacheKey_DistinguishesPages(t *testing.T) {
	assert.NotEqual(t, cacheKey("cat", 1, 40), cacheKey("cat", 2, 40))
	assert.NotEqual(t, cacheKey("cat", 1, 40), cacheKey("cat", 1, 20))
	assert.Equal(t, cacheKey("cat", 1, 40), cacheKey("cat", 1, 40))
}
