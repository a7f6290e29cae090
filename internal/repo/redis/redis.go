// Package redisrepo holds the key/value backed repositories: leaderboards,
// the password cache and the in-process user cache that fronts the store.
package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr      string `json:",default=127.0.0.1:6379"`
	Password  string `json:",optional"`
	DB        int    `json:",default=0"`
	KeyPrefix string `json:",optional"`
}

// Open connects and pings the server.
func Open(ctx context.Context, c Config) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping %s: %w", c.Addr, err)
	}
	return cli, nil
}

func key(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + ":" + k
}
