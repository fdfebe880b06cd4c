package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (c *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	createdAtUnix, err := c.redisClient.Get(ctx, sessionKeyPrefix+token).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// logged out sessions are kept with a zero timestamp until cleaned
	if createdAtUnix <= 0 {
		return false, nil
	}

	return time.Since(time.Unix(createdAtUnix, 0)) <= c.ttl, nil
}

func parseCreatedAt(val string) (time.Time, error) {
	createdAtUnix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(createdAtUnix, 0), nil
}
