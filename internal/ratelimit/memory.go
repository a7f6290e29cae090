package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
	"golang.org/x/time/rate"
)

// Memory keeps a token bucket per client in process memory. A bucket is
// dropped one period after it was created.
type Memory struct {
	budgets map[Action]Budget
	buckets map[Action]*collection.Cache
}

func NewMemory(budgets map[Action]Budget) (*Memory, error) {
	m := &Memory{budgets: budgets, buckets: make(map[Action]*collection.Cache, len(budgets))}
	for a, b := range budgets {
		c, err := collection.NewCache(b.Period, collection.WithName("ratelimit:"+string(a)))
		if err != nil {
			return nil, err
		}
		m.buckets[a] = c
	}
	return m, nil
}

func (m *Memory) Allow(_ context.Context, action Action, key string) (bool, error) {
	b, ok := m.budgets[action]
	if !ok {
		return false, fmt.Errorf("ratelimit: unknown action %q", action)
	}
	v, err := m.buckets[action].Take(key, func() (any, error) {
		return rate.NewLimiter(rate.Every(b.Period/time.Duration(b.Limit)), b.Limit), nil
	})
	if err != nil {
		return false, err
	}
	return v.(*rate.Limiter).Allow(), nil
}
