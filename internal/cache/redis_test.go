package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/airline-booking/config"
	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march1 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c := NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: srv.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "cache:flights:search:OPO:LIS:2026-03-01", searchKey("opo", "Lis", march1))
	assert.Equal(t, searchKey("OPO", "LIS", march1), searchKey("opo", "lis", march1))
	assert.NotEqual(t, searchKey("OPO", "LIS", march1), searchKey("LIS", "OPO", march1))
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute)

	assert.NotNil(t, c)
	assert.Equal(t, time.Minute, c.searchTTL)
	assert.NoError(t, c.Close())
}

func TestRedisCache_GetSearchMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	flights, err := c.GetSearch(context.Background(), "OPO", "LIS", march1)

	assert.NoError(t, err)
	assert.Nil(t, flights)
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, srv := newTestCache(t, time.Minute)
	ctx := context.Background()
	want := []domain.Flight{
		{ID: uuid.New(), Origin: "OPO", Destination: "LIS", Date: march1, PriceCents: 4999},
		{ID: uuid.New(), Origin: "OPO", Destination: "LIS", Date: march1, PriceCents: 5999},
	}

	require.NoError(t, c.SetSearch(ctx, "opo", "lis", march1, want))

	got, err := c.GetSearch(ctx, "OPO", "LIS", march1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.True(t, want[i].Date.Equal(got[i].Date))
		assert.Equal(t, want[i].PriceCents, got[i].PriceCents)
		assert.Equal(t, want[i].Origin, got[i].Origin)
	}

	assert.True(t, srv.Exists("cache:flights:search:OPO:LIS:2026-03-01"))
	assert.Equal(t, time.Minute, srv.TTL("cache:flights:search:OPO:LIS:2026-03-01"))
}

func TestRedisCache_EmptyResultIsCached(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetSearch(ctx, "MAD", "LIS", march1, nil))

	got, err := c.GetSearch(ctx, "MAD", "LIS", march1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRedisCache_EntryExpires(t *testing.T) {
	c, srv := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetSearch(ctx, "OPO", "LIS", march1, []domain.Flight{{ID: uuid.New()}}))
	srv.FastForward(2 * time.Minute)

	got, err := c.GetSearch(ctx, "OPO", "LIS", march1)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	c, srv := newTestCache(t, time.Minute)
	require.NoError(t, srv.Set("cache:flights:search:OPO:LIS:2026-03-01", "{not json"))

	_, err := c.GetSearch(context.Background(), "OPO", "LIS", march1)

	assert.ErrorContains(t, err, "decode cached search")
}

func TestRedisCache_Ping(t *testing.T) {
	c, srv := newTestCache(t, time.Minute)
	assert.NoError(t, c.Ping(context.Background()))

	srv.Close()
	assert.Error(t, c.Ping(context.Background()))
}
