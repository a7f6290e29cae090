// Package ratelimit gates abusable endpoints with a request budget per
// client and action.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Action names a rate-limited operation.
type Action string

const (
	Register      Action = "register"
	FriendRequest Action = "friend_request"
	Block         Action = "block"
	CommentPost   Action = "comment_post"
	LevelUpload   Action = "level_upload"
	SaveUpload    Action = "save_upload"
	LevelDownload Action = "level_download"
	MessageSend   Action = "message_send"
	Like          Action = "like"
	LevelComment  Action = "level_comment"
)

// Budget allows Limit requests per Period.
type Budget struct {
	Limit  int
	Period time.Duration
}

func (b Budget) String() string { return fmt.Sprintf("%d/%s", b.Limit, b.Period) }

// DefaultBudgets are applied to any action without a configured override.
var DefaultBudgets = map[Action]Budget{
	Register:      {10, 10 * time.Minute},
	FriendRequest: {1, 30 * time.Second},
	Block:         {1, 30 * time.Second},
	CommentPost:   {4, time.Minute},
	LevelUpload:   {3, 10 * time.Minute},
	SaveUpload:    {1, 5 * time.Minute},
	LevelDownload: {100, 10 * time.Minute},
	MessageSend:   {5, 5 * time.Minute},
	Like:          {50, 10 * time.Minute},
	LevelComment:  {15, time.Minute},
}

type Config struct {
	Enabled bool   `json:",default=true"`
	Driver  string `json:",default=memory,options=memory|redis"`
	// Budgets overrides DefaultBudgets, keyed by action name.
	Budgets map[string]Budget `json:",optional"`
}

// Budgets resolves the effective budget of every action.
func (c Config) Budgets() (map[Action]Budget, error) {
	out := make(map[Action]Budget, len(DefaultBudgets))
	for a, b := range DefaultBudgets {
		out[a] = b
	}
	for name, b := range c.Budgets {
		a := Action(name)
		if _, ok := DefaultBudgets[a]; !ok {
			return nil, fmt.Errorf("ratelimit: unknown action %q", name)
		}
		if b.Limit <= 0 || b.Period <= 0 {
			return nil, fmt.Errorf("ratelimit: invalid budget %s for %s", b, name)
		}
		out[a] = b
	}
	return out, nil
}

// Limiter reports whether the client identified by key may perform action.
type Limiter interface {
	Allow(ctx context.Context, action Action, key string) (bool, error)
}

type unlimited struct{}

func (unlimited) Allow(context.Context, Action, string) (bool, error) { return true, nil }

// Unlimited admits every request.
var Unlimited Limiter = unlimited{}
