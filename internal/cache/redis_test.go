package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	require.NotNil(t, GetClient(), "redis client should connect to miniredis")
	t.Cleanup(Close)

	return mr
}

func TestAside_MissFetchesAndStores(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var got cachedThing
	err := Aside(ctx, "thing:1", &got, time.Minute, func() error {
		fetches++
		got = cachedThing{ID: 1, Name: "fetched"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "fetched", got.Name)

	// The entry is now in Redis with the TTL applied.
	assert.True(t, mr.Exists("thing:1"))
	assert.Greater(t, mr.TTL("thing:1"), time.Duration(0))

	// Second read hits the cache and never calls fetch.
	var again cachedThing
	err = Aside(ctx, "thing:1", &again, time.Minute, func() error {
		fetches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "fetched", again.Name)
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	wantErr := assert.AnError
	var got cachedThing
	err := Aside(ctx, "thing:2", &got, time.Minute, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, mr.Exists("thing:2"))
}

func TestAside_CorruptEntryFallsThrough(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("thing:3", "{not json"))

	fetches := 0
	var got cachedThing
	err := Aside(ctx, "thing:3", &got, time.Minute, func() error {
		fetches++
		got = cachedThing{ID: 3, Name: "refetched"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "refetched", got.Name)
}

func TestAside_NoClientPassesThrough(t *testing.T) {
	Close() // ensure no client
	ctx := context.Background()

	fetches := 0
	var got cachedThing
	err := Aside(ctx, "thing:4", &got, time.Minute, func() error {
		fetches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(1), `{"id":1}`))
	require.NoError(t, mr.Set(PostKey(2), `{"id":2}`))

	InvalidateUser(ctx, 1)
	InvalidatePost(ctx, 2)

	assert.False(t, mr.Exists(UserKey(1)))
	assert.False(t, mr.Exists(PostKey(2)))
}
