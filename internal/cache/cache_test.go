package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache() *Cache {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return New(NewMemoryStore(), logger)
}

func TestFetch_CachesFillResult(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	calls := 0

	fill := func(context.Context) (string, error) {
		calls++
		return "hello", nil
	}

	v, err := Fetch(ctx, c, "k1", time.Minute, fill)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = Fetch(ctx, c, "k1", time.Minute, fill)
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.Equal(t, 1, calls, "second read must be served from cache")
}

func TestFetch_ExpiredEntryRefills(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	calls := 0

	fill := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := Fetch(ctx, c, "k1", time.Millisecond, fill)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	time.Sleep(5 * time.Millisecond)

	v, err = Fetch(ctx, c, "k1", time.Millisecond, fill)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInvalidate_IsScoped(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	fills := map[string]int{}
	fillFor := func(key string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) {
			fills[key]++
			return key, nil
		}
	}

	for _, key := range []string{"order:1", "balance:c1", "products:all"} {
		_, err := Fetch(ctx, c, key, time.Minute, fillFor(key))
		require.NoError(t, err)
	}

	// Only the mutation-affected entries are invalidated
	c.Invalidate(ctx, "order:1", "balance:c1")

	for _, key := range []string{"order:1", "balance:c1", "products:all"} {
		_, err := Fetch(ctx, c, key, time.Minute, fillFor(key))
		require.NoError(t, err)
	}

	assert.Equal(t, 2, fills["order:1"])
	assert.Equal(t, 2, fills["balance:c1"])
	assert.Equal(t, 1, fills["products:all"], "unrelated entry must survive")
}

// A fill that races with an invalidation is returned to its caller but
// never written back, so stale data cannot overwrite newer state.
func TestFetch_StaleFillIsDiscarded(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	calls := 0

	racing := func(context.Context) (string, error) {
		calls++
		// An invalidation lands while the response is in flight
		c.Invalidate(ctx, "k1")
		return "stale", nil
	}

	v, err := Fetch(ctx, c, "k1", time.Minute, racing)
	require.NoError(t, err)
	assert.Equal(t, "stale", v, "the caller still gets the response")

	fresh := func(context.Context) (string, error) {
		calls++
		return "fresh", nil
	}
	v, err = Fetch(ctx, c, "k1", time.Minute, fresh)
	require.NoError(t, err)
	assert.Equal(t, "fresh", v, "the stale fill must not have been cached")
	assert.Equal(t, 2, calls)
}

func TestFetch_DeduplicatesConcurrentFills(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	fill := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return "once", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(ctx, c, "k1", time.Minute, fill)
			assert.NoError(t, err)
			assert.Equal(t, "once", v)
		}()
	}

	<-started
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(2), "concurrent reads must collapse to at most a fill per flight")
}

func TestCollectionVersion_BumpRetiresListings(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	v0 := c.CollectionVersion(ctx, OrderListCollection("c1"))
	key0 := OrderListKey("c1", v0, "page=0")

	calls := 0
	fill := func(context.Context) (string, error) {
		calls++
		return "page", nil
	}

	_, err := Fetch(ctx, c, key0, time.Minute, fill)
	require.NoError(t, err)

	c.BumpCollection(ctx, OrderListCollection("c1"))

	v1 := c.CollectionVersion(ctx, OrderListCollection("c1"))
	assert.NotEqual(t, v0, v1)

	_, err = Fetch(ctx, c, OrderListKey("c1", v1, "page=0"), time.Minute, fill)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "new version must miss the old page")
}
