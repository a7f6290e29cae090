package ratelimit

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// Redis counts requests in fixed windows shared by every server instance.
type Redis struct {
	limiters map[Action]*limit.PeriodLimit
}

func NewRedis(store *redis.Redis, keyPrefix string, budgets map[Action]Budget) *Redis {
	r := &Redis{limiters: make(map[Action]*limit.PeriodLimit, len(budgets))}
	for a, b := range budgets {
		r.limiters[a] = limit.NewPeriodLimit(int(b.Period.Seconds()), b.Limit, store, keyPrefix+"ratelimit:"+string(a)+":")
	}
	return r
}

func (r *Redis) Allow(ctx context.Context, action Action, key string) (bool, error) {
	l, ok := r.limiters[action]
	if !ok {
		return false, fmt.Errorf("ratelimit: unknown action %q", action)
	}
	code, err := l.TakeCtx(ctx, key)
	if err != nil {
		return false, err
	}
	return code == limit.Allowed || code == limit.HitQuota, nil
}

// New builds the limiter selected by c. store is only used by the redis driver.
func New(c Config, store *redis.Redis, keyPrefix string) (Limiter, error) {
	if !c.Enabled {
		return Unlimited, nil
	}
	budgets, err := c.Budgets()
	if err != nil {
		return nil, err
	}
	if c.Driver == "redis" {
		if store == nil {
			return nil, fmt.Errorf("ratelimit: redis driver without a redis store")
		}
		return NewRedis(store, keyPrefix, budgets), nil
	}
	return NewMemory(budgets)
}
