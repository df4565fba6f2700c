package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nameswipe/nameswipe/internal/cache"
	"github.com/nameswipe/nameswipe/internal/config"
)

func setupCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := &config.Config{Redis: config.RedisConfig{Addr: mr.Addr()}}
	return cache.NewRedisCache(cfg), mr
}

func TestSyncSessionMatchesFiresOncePerTransition(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t)

	// first time emma matches
	added, err := c.SyncSessionMatches(ctx, "session-1", []string{"emma"})
	require.NoError(t, err)
	assert.Equal(t, []string{"emma"}, added)

	// still matched: nothing new
	added, err = c.SyncSessionMatches(ctx, "session-1", []string{"emma"})
	require.NoError(t, err)
	assert.Empty(t, added)

	// dissolved, then matched again: fires again
	added, err = c.SyncSessionMatches(ctx, "session-1", nil)
	require.NoError(t, err)
	assert.Empty(t, added)
	added, err = c.SyncSessionMatches(ctx, "session-1", []string{"emma"})
	require.NoError(t, err)
	assert.Equal(t, []string{"emma"}, added)
}

func TestSyncSessionMatchesReportsOnlyAdditions(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t)

	_, err := c.SyncSessionMatches(ctx, "session-1", []string{"emma", "liam"})
	require.NoError(t, err)

	added, err := c.SyncSessionMatches(ctx, "session-1", []string{"emma", "noah"})
	require.NoError(t, err)
	assert.Equal(t, []string{"noah"}, added)
}

func TestDropSessionMatchesResetsTheSet(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t)

	_, err := c.SyncSessionMatches(ctx, "session-1", []string{"emma"})
	require.NoError(t, err)
	require.NoError(t, c.DropSessionMatches(ctx, "session-1"))

	added, err := c.SyncSessionMatches(ctx, "session-1", []string{"emma"})
	require.NoError(t, err)
	assert.Equal(t, []string{"emma"}, added)
}

func TestPresenceExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	require.NoError(t, c.MarkActive(ctx, "session-1", "user-a", time.Second))

	active, err := c.ActiveUsers(ctx, "session-1", []string{"user-a", "user-b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"user-a"}, active)

	mr.FastForward(2 * time.Second)

	active, err = c.ActiveUsers(ctx, "session-1", []string{"user-a", "user-b"})
	require.NoError(t, err)
	assert.Empty(t, active)
}
