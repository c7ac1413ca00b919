// Package redisdb wraps the Redis client used for the leaderboard cache.
// Redis is an accelerator here, not the source of truth: Postgres holds the
// durable profile rows and the cache can always be rebuilt from them.
package redisdb

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/config"
)

// Client embeds the go-redis client so leaderboard methods can be attached.
type Client struct {
	*redis.Client
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	log.Info("Connected to Redis")
	return &Client{Client: rdb}, nil
}
