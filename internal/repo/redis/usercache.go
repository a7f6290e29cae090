package redisrepo

import (
	"context"
	"strconv"
	"time"

	"github.com/zeromicro/go-zero/core/collection"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// CachedUsers fronts a UserRepository with a process-local cache of
// FromID lookups. Writes through the wrapper evict the entry.
type CachedUsers struct {
	dom.UserRepository
	cache *collection.Cache
}

var _ dom.UserRepository = (*CachedUsers)(nil)

func NewCachedUsers(repo dom.UserRepository, ttl time.Duration, limit int) (*CachedUsers, error) {
	c, err := collection.NewCache(ttl, collection.WithName("users"), collection.WithLimit(limit))
	if err != nil {
		return nil, err
	}
	return &CachedUsers{UserRepository: repo, cache: c}, nil
}

func (c *CachedUsers) FromID(ctx context.Context, id int) (*dom.User, error) {
	v, err := c.cache.Take(strconv.Itoa(id), func() (any, error) {
		return c.UserRepository.FromID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	u := *v.(*dom.User)
	return &u, nil
}

func (c *CachedUsers) Update(ctx context.Context, id int, upd dom.UserUpdate) (*dom.User, error) {
	c.cache.Del(strconv.Itoa(id))
	u, err := c.UserRepository.Update(ctx, id, upd)
	c.cache.Del(strconv.Itoa(id))
	db.AfterCommit(ctx, func(context.Context) { c.cache.Del(strconv.Itoa(id)) })
	return u, err
}

