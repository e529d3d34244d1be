package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/streamhub/stream-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// RedisUserCache keeps resolved sender identities so chat enrichment does
// not hit the database on every message. User records are immutable in this
// system, so TTL expiry is the only invalidation needed.
type RedisUserCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisUserCache(addr, password string, db int, ttl time.Duration) (*RedisUserCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &RedisUserCache{
		client: client,
		prefix: "user",
		ttl:    ttl,
	}, nil
}

func (c *RedisUserCache) key(id int64) string {
	return c.prefix + ":" + strconv.FormatInt(id, 10)
}

func (c *RedisUserCache) Get(ctx context.Context, id int64) (*domain.User, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get from redis: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("unmarshal cached user: %w", err)
	}
	return &u, nil
}

func (c *RedisUserCache) Set(ctx context.Context, u *domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	if err := c.client.Set(ctx, c.key(u.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set in redis: %w", err)
	}
	return nil
}

func (c *RedisUserCache) Close() error {
	return c.client.Close()
}
