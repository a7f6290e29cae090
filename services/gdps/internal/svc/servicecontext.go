package svc

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeromicro/go-zero/core/logx"
	zredis "github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/analytics"
	"github.com/gdps-go/gdps/internal/db"
	"github.com/gdps-go/gdps/internal/objstore"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/pubsub"
	"github.com/gdps-go/gdps/internal/ratelimit"
	gormrepo "github.com/gdps-go/gdps/internal/repo/gorm"
	chestsgorm "github.com/gdps-go/gdps/internal/repo/gorm/chests"
	commentsgorm "github.com/gdps-go/gdps/internal/repo/gorm/comments"
	eventsgorm "github.com/gdps-go/gdps/internal/repo/gorm/events"
	levelsgorm "github.com/gdps-go/gdps/internal/repo/gorm/levels"
	likesgorm "github.com/gdps-go/gdps/internal/repo/gorm/likes"
	messagesgorm "github.com/gdps-go/gdps/internal/repo/gorm/messages"
	socialgorm "github.com/gdps-go/gdps/internal/repo/gorm/social"
	usersgorm "github.com/gdps-go/gdps/internal/repo/gorm/users"
	redisrepo "github.com/gdps-go/gdps/internal/repo/redis"
	"github.com/gdps-go/gdps/internal/search"
	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/internal/upstream"
	"github.com/gdps-go/gdps/services/gdps/internal/config"
)

type ServiceContext struct {
	Config   config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Services *service.Services
	Router   *pubsub.Router
	Limiter  ratelimit.Limiter
	Activity *analytics.Recorder
	Now      func() time.Time

	broker pubsub.Broker
}

// NewServiceContext wires every collaborator named by c and exits the
// process when one cannot be opened.
func NewServiceContext(c config.Config) *ServiceContext {
	ctx, err := New(context.Background(), c)
	logx.Must(err)
	return ctx
}

// New wires every collaborator named by c.
func New(ctx context.Context, c config.Config) (*ServiceContext, error) {
	gdb, err := db.Open(c.Database.DataSource)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if c.Database.AutoMigrate {
		if err := gormrepo.AutoMigrate(gdb); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	rdb, err := redisrepo.Open(ctx, c.Redis)
	if err != nil {
		return nil, fmt.Errorf("open redis: %w", err)
	}
	index, err := search.New(c.Search)
	if err != nil {
		return nil, fmt.Errorf("open search: %w", err)
	}
	store, err := objstore.Open(ctx, c.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	var users dom.UserRepository = usersgorm.New(gdb, index)
	if c.UserCache.Enabled {
		if users, err = redisrepo.NewCachedUsers(users, c.UserCache.TTL, c.UserCache.Limit); err != nil {
			return nil, err
		}
	}

	var limitStore *zredis.Redis
	if c.RateLimit.Driver == "redis" {
		limitStore = zredis.New(c.Redis.Addr, zredis.WithPass(c.Redis.Password))
	}
	limiter, err := ratelimit.New(c.RateLimit, limitStore, c.Redis.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	broker, err := pubsub.New(c.PubSub, rdb)
	if err != nil {
		return nil, fmt.Errorf("open broker: %w", err)
	}

	activity, err := analytics.Open(c.Analytics, rdb)
	if err != nil {
		return nil, fmt.Errorf("open analytics: %w", err)
	}

	now := func() time.Time { return time.Now().UTC() }
	events := eventsgorm.New(gdb)
	services := service.New(service.Deps{
		DB:             gdb,
		Users:          users,
		Credentials:    usersgorm.NewCredentialRepo(gdb),
		Levels:         levelsgorm.New(gdb, index),
		Schedules:      levelsgorm.NewScheduleRepo(gdb),
		LevelComments:  commentsgorm.NewLevelRepo(gdb),
		UserComments:   commentsgorm.NewUserRepo(gdb),
		Messages:       messagesgorm.New(gdb),
		FriendRequests: socialgorm.NewFriendRequestRepo(gdb),
		Relationships:  socialgorm.NewRelationshipRepo(gdb),
		Likes:          likesgorm.New(gdb),
		Chests:         chestsgorm.New(gdb),
		Songs:          levelsgorm.NewSongRepo(gdb),
		Events:         events,
		Leaderboard:    redisrepo.NewLeaderboard(rdb, c.Redis.KeyPrefix),
		Passwords:      redisrepo.NewPasswordCache(rdb, c.Redis.KeyPrefix),
		UserIndex:      index,
		LevelIndex:     index,
		Blobs:          objstore.Blobs{Store: store},
		Upstream:       upstream.New(c.Upstream),
		Now:            now,
	})

	router := pubsub.NewRouter(broker, events, c.PubSub.QueueCapacity)
	pubsub.Register(router, services)

	return &ServiceContext{
		Config:   c,
		DB:       gdb,
		Redis:    rdb,
		Services: services,
		Router:   router,
		Limiter:  limiter,
		Activity: activity,
		Now:      now,
		broker:   broker,
	}, nil
}

// Close releases the broker and redis connections.
func (s *ServiceContext) Close() {
	if s.Activity != nil {
		if err := s.Activity.Close(); err != nil {
			logx.Errorf("close analytics: %v", err)
		}
	}
	if err := s.broker.Close(); err != nil {
		logx.Errorf("close broker: %v", err)
	}
	if err := s.Redis.Close(); err != nil {
		logx.Errorf("close redis: %v", err)
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
