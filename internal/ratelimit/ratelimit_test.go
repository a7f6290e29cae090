package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

func TestConfigBudgets(t *testing.T) {
	budgets, err := Config{Budgets: map[string]Budget{"like": {Limit: 2, Period: time.Minute}}}.Budgets()
	if err != nil {
		t.Fatal(err)
	}
	if budgets[Like] != (Budget{2, time.Minute}) || budgets[Register] != DefaultBudgets[Register] {
		t.Fatalf("budgets = %v", budgets)
	}
	if _, err := (Config{Budgets: map[string]Budget{"nope": {1, time.Second}}}).Budgets(); err == nil {
		t.Fatal("unknown action accepted")
	}
	if _, err := (Config{Budgets: map[string]Budget{"like": {0, time.Second}}}).Budgets(); err == nil {
		t.Fatal("zero limit accepted")
	}
}

func exhaust(t *testing.T, l Limiter, a Action, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		ok, err := l.Allow(ctx, a, "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
	}
	if ok, _ := l.Allow(ctx, a, "10.0.0.1"); ok {
		t.Fatalf("request %d admitted over budget", n+1)
	}
	if ok, _ := l.Allow(ctx, a, "10.0.0.2"); !ok {
		t.Fatal("other client rejected")
	}
}

func TestMemory(t *testing.T) {
	m, err := NewMemory(DefaultBudgets)
	if err != nil {
		t.Fatal(err)
	}
	exhaust(t, m, CommentPost, 4)
	exhaust(t, m, FriendRequest, 1)
	if _, err := m.Allow(context.Background(), "bogus", "x"); err == nil {
		t.Fatal("unknown action admitted")
	}
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedis(redis.New(mr.Addr()), "gdps:", DefaultBudgets)
	exhaust(t, r, CommentPost, 4)

	mr.FastForward(time.Minute)
	if ok, err := r.Allow(context.Background(), CommentPost, "10.0.0.1"); err != nil || !ok {
		t.Fatalf("window did not reset: %v", err)
	}
}

func TestDisabled(t *testing.T) {
	l, err := New(Config{Enabled: false}, nil, "")
	if err != nil || l != Unlimited {
		t.Fatalf("limiter = %v, %v", l, err)
	}
	if _, err := New(Config{Enabled: true, Driver: "redis"}, nil, ""); err == nil {
		t.Fatal("redis driver built without a store")
	}
}
