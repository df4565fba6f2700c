package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nameswipe/nameswipe/internal/config"
)

// matchSetTTL keeps stale match sets from outliving their session.
const matchSetTTL = 24 * time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes the Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// KeyForSessionMatches holds the last known matched name set of a session.
func (c *RedisCache) KeyForSessionMatches(sessionID string) string {
	return fmt.Sprintf("session:matches:%s", sessionID)
}

// SyncSessionMatches reconciles the stored match set of a session with the
// freshly computed one and returns the names that are matches now but were
// not before. This is what makes the new_match signal fire exactly once per
// transition: a name re-enters the returned slice only after it first left
// the set (e.g. like, dislike, like again).
func (c *RedisCache) SyncSessionMatches(ctx context.Context, sessionID string, current []string) ([]string, error) {
	key := c.KeyForSessionMatches(sessionID)

	prev, err := c.Client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	prevSet := make(map[string]bool, len(prev))
	for _, name := range prev {
		prevSet[name] = true
	}
	curSet := make(map[string]bool, len(current))

	var added []string
	for _, name := range current {
		curSet[name] = true
		if !prevSet[name] {
			added = append(added, name)
		}
	}
	var removed []string
	for _, name := range prev {
		if !curSet[name] {
			removed = append(removed, name)
		}
	}

	pipe := c.Client.TxPipeline()
	if len(added) > 0 {
		members := make([]interface{}, len(added))
		for i, name := range added {
			members[i] = name
		}
		pipe.SAdd(ctx, key, members...)
	}
	if len(removed) > 0 {
		members := make([]interface{}, len(removed))
		for i, name := range removed {
			members[i] = name
		}
		pipe.SRem(ctx, key, members...)
	}
	pipe.Expire(ctx, key, matchSetTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return added, nil
}

// DropSessionMatches forgets a session's match set (used by the sweeper).
func (c *RedisCache) DropSessionMatches(ctx context.Context, sessionID string) error {
	return c.Del(ctx, c.KeyForSessionMatches(sessionID))
}

// KeyForPresence marks a user as recently active in a session.
func (c *RedisCache) KeyForPresence(sessionID, userID string) string {
	return fmt.Sprintf("session:presence:%s:%s", sessionID, userID)
}

// MarkActive stamps a liveness key with a short TTL. Poll-mode clients use
// this as the partner-activity proxy; every swipe refreshes it.
func (c *RedisCache) MarkActive(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	return c.Client.Set(ctx, c.KeyForPresence(sessionID, userID), "1", ttl).Err()
}

// ActiveUsers filters userIDs down to those with a live presence key.
func (c *RedisCache) ActiveUsers(ctx context.Context, sessionID string, userIDs []string) ([]string, error) {
	var active []string
	for _, userID := range userIDs {
		n, err := c.Client.Exists(ctx, c.KeyForPresence(sessionID, userID)).Result()
		if err != nil {
			return nil, err
		}
		if n > 0 {
			active = append(active, userID)
		}
	}
	return active, nil
}
