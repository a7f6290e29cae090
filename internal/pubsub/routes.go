package pubsub

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/service"
)

// Control channels.
const (
	Ping                     = "ping"
	LevelsSyncSearch         = "levels:sync_meili"
	UsersSyncSearch          = "users:sync_meili"
	LeaderboardsSyncStars    = "leaderboards:sync_stars"
	LeaderboardsSyncCreators = "leaderboards:sync_creators"
)

// Register binds the control channels to the synchronisers.
func Register(r *Router, s *service.Services) {
	r.Handle(Ping, func(ctx context.Context, _ []byte) error {
		logx.WithContext(ctx).Info("pubsub: pong")
		return nil
	})
	r.Handle(LevelsSyncSearch, counted(s.Sync.Levels))
	r.Handle(UsersSyncSearch, counted(s.Sync.Users))
	r.Handle(LeaderboardsSyncStars, counted(s.Leaderboards.SyncStars))
	r.Handle(LeaderboardsSyncCreators, counted(s.Leaderboards.SyncCreators))
}

func counted(fn func(context.Context) (int, error)) Handler {
	return func(ctx context.Context, _ []byte) error {
		_, err := fn(ctx)
		return err
	}
}
