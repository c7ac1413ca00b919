package redisdb

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Sorted set of user IDs scored by lifetime XP.
const leaderboardKey = "leaderboard:lifetime_xp"

// SetLifetimeXP writes the absolute lifetime XP score for a user.
// Called after every session commit and by the nightly rebuild; the score is
// absolute, not incremental, so replays are harmless.
func (c *Client) SetLifetimeXP(ctx context.Context, userID string, lifetimeXP int64) error {
	err := c.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(lifetimeXP),
		Member: userID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to set leaderboard score: %w", err)
	}
	return nil
}

// TopByLifetimeXP returns the highest-scored user IDs with their scores.
func (c *Client) TopByLifetimeXP(ctx context.Context, limit int64) ([]redis.Z, error) {
	entries, err := c.ZRevRangeWithScores(ctx, leaderboardKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return entries, nil
}

// Rank returns the 1-based leaderboard position of a user.
func (c *Client) Rank(ctx context.Context, userID string) (int64, error) {
	// ZRevRank is 0-based.
	rank, err := c.ZRevRank(ctx, leaderboardKey, userID).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get rank: %w", err)
	}
	return rank + 1, nil
}

// RemoveUser drops a user from the leaderboard (account reset or deletion).
func (c *Client) RemoveUser(ctx context.Context, userID string) error {
	if err := c.ZRem(ctx, leaderboardKey, userID).Err(); err != nil {
		return fmt.Errorf("failed to remove leaderboard member: %w", err)
	}
	return nil
}

// RebuildLeaderboard atomically replaces the whole sorted set.
// Used by the nightly cron job to heal any drift between Redis and Postgres.
func (c *Client) RebuildLeaderboard(ctx context.Context, scores map[string]int64) error {
	pipe := c.TxPipeline()
	pipe.Del(ctx, leaderboardKey)
	for userID, xp := range scores {
		pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(xp), Member: userID})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to rebuild leaderboard: %w", err)
	}
	return nil
}
