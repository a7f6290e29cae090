package redisrepo

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	dom "github.com/gdps-go/gdps/internal/ports"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cli.Close() })
	return mr, cli
}

func TestLeaderboardRanks(t *testing.T) {
	_, cli := newClient(t)
	ctx := context.Background()
	lb := NewLeaderboard(cli, "")

	for id, stars := range map[int]int{1: 100, 2: 300, 3: 200} {
		if err := lb.SetStars(ctx, id, stars); err != nil {
			t.Fatal(err)
		}
	}
	rank, err := lb.StarRank(ctx, 3)
	if err != nil || rank != 2 {
		t.Fatalf("rank = %d, %v", rank, err)
	}
	top, err := lb.TopStars(ctx, 0, 2)
	if err != nil || !reflect.DeepEqual(top, []int{2, 3}) {
		t.Fatalf("top = %v, %v", top, err)
	}

	if err := lb.SetStars(ctx, 2, 0); err != nil {
		t.Fatal(err)
	}
	if rank, _ := lb.StarRank(ctx, 2); rank != 0 {
		t.Fatalf("zero score kept member at rank %d", rank)
	}
	if rank, _ := lb.StarRank(ctx, 3); rank != 1 {
		t.Fatalf("rank after removal = %d", rank)
	}
}

func TestLeaderboardCreatorsSeparate(t *testing.T) {
	mr, cli := newClient(t)
	ctx := context.Background()
	lb := NewLeaderboard(cli, "gdps")

	if err := lb.SetCreatorPoints(ctx, 7, 3); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("gdps:leaderboards:creators") {
		t.Fatal("creators set not written under prefix")
	}
	if rank, _ := lb.StarRank(ctx, 7); rank != 0 {
		t.Fatalf("creator points leaked into stars: rank %d", rank)
	}
	if err := lb.RemoveCreatorPoints(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if top, _ := lb.TopCreators(ctx, 0, 10); len(top) != 0 {
		t.Fatalf("top after removal = %v", top)
	}
}

func TestPasswordCache(t *testing.T) {
	mr, cli := newClient(t)
	ctx := context.Background()
	pc := NewPasswordCache(cli, "")

	if _, ok, err := pc.Get(ctx, "$2a$hash"); ok || err != nil {
		t.Fatalf("miss = %v, %v", ok, err)
	}
	if err := pc.Set(ctx, "$2a$hash", "digest"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := pc.Get(ctx, "$2a$hash")
	if !ok || err != nil || v != "digest" {
		t.Fatalf("hit = %q, %v, %v", v, ok, err)
	}
	mr.FastForward(passwordTTL + time.Second)
	if _, ok, _ := pc.Get(ctx, "$2a$hash"); ok {
		t.Fatal("entry survived its ttl")
	}
}

type countingUsers struct {
	dom.UserRepository
	calls int
	user  dom.User
}

func (c *countingUsers) FromID(_ context.Context, id int) (*dom.User, error) {
	c.calls++
	u := c.user
	u.ID = id
	return &u, nil
}

func (c *countingUsers) Update(_ context.Context, id int, upd dom.UserUpdate) (*dom.User, error) {
	if upd.Stars != nil {
		c.user.Stars = *upd.Stars
	}
	u := c.user
	u.ID = id
	return &u, nil
}

func TestCachedUsers(t *testing.T) {
	inner := &countingUsers{user: dom.User{Username: "Player", Stars: 5}}
	cu, err := NewCachedUsers(inner, time.Minute, 100)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		u, err := cu.FromID(ctx, 1)
		if err != nil || u.Stars != 5 {
			t.Fatalf("FromID = %+v, %v", u, err)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("inner FromID called %d times", inner.calls)
	}

	stars := 9
	if _, err := cu.Update(ctx, 1, dom.UserUpdate{Stars: &stars}); err != nil {
		t.Fatal(err)
	}
	u, _ := cu.FromID(ctx, 1)
	if u.Stars != 9 || inner.calls != 2 {
		t.Fatalf("after update stars=%d calls=%d", u.Stars, inner.calls)
	}
}
