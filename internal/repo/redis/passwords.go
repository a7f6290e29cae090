package redisrepo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	dom "github.com/gdps-go/gdps/internal/ports"
)

const passwordTTL = 30 * time.Minute

// PasswordCache remembers which GJP2 digest last matched a bcrypt hash so
// repeated logins skip the bcrypt comparison.
type PasswordCache struct {
	cli    redis.UniversalClient
	prefix string
}

var _ dom.PasswordCache = (*PasswordCache)(nil)

func NewPasswordCache(cli redis.UniversalClient, prefix string) *PasswordCache {
	return &PasswordCache{cli: cli, prefix: prefix}
}

func (c *PasswordCache) Get(ctx context.Context, hash string) (string, bool, error) {
	v, err := c.cli.Get(ctx, key(c.prefix, "passwords:"+hash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *PasswordCache) Set(ctx context.Context, hash, gjp2 string) error {
	return c.cli.Set(ctx, key(c.prefix, "passwords:"+hash), gjp2, passwordTTL).Err()
}
