package redissvc

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*RedisService, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisService(rdb), mr
}

func TestJSONRoundTripWithTTL(t *testing.T) {
	ctx := context.Background()
	rs, mr := newTestService(t)

	type entry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, rs.SetJSON(ctx, "k", entry{Name: "taza", Count: 3}, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	var got entry
	require.NoError(t, rs.GetJSON(ctx, "k", &got))
	assert.Equal(t, entry{Name: "taza", Count: 3}, got)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, rs.GetJSON(ctx, "k", &got), ErrCacheMiss)
}

func TestGetJSONRejectsGarbage(t *testing.T) {
	rs, mr := newTestService(t)
	require.NoError(t, mr.Set("k", "not json"))

	var got map[string]any
	err := rs.GetJSON(context.Background(), "k", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = rdb.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
