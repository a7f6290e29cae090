// Package service implements the game server's domain operations. Every
// operation returns a value or an error; domain failures are *Error values
// carrying a Kind, everything else is an infrastructure failure.
package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/chest"
	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// Deps aggregates the collaborators every service draws from.
type Deps struct {
	DB             *gorm.DB
	Users          dom.UserRepository
	Credentials    dom.CredentialRepository
	Levels         dom.LevelRepository
	Schedules      dom.LevelScheduleRepository
	LevelComments  dom.LevelCommentRepository
	UserComments   dom.UserCommentRepository
	Messages       dom.MessageRepository
	FriendRequests dom.FriendRequestRepository
	Relationships  dom.RelationshipRepository
	Likes          dom.LikeRepository
	Chests         dom.DailyChestRepository
	Songs          dom.SongRepository
	Events         dom.ControlEventRepository
	Leaderboard    dom.Leaderboard
	Passwords      dom.PasswordCache
	UserIndex      dom.UserIndex
	LevelIndex     dom.LevelIndex
	Blobs          dom.BlobStore
	Upstream       dom.UpstreamGame
	ChestEngine    *chest.Engine
	Now            func() time.Time
}

// Services is the full set of domain services sharing one Deps.
type Services struct {
	Auth          *AuthService
	Users         *UserService
	Levels        *LevelService
	LevelData     *LevelData
	SaveData      *SaveData
	Schedules     *ScheduleService
	Comments      *CommentService
	Friends       *FriendRequestService
	Relationships *RelationshipService
	Messages      *MessageService
	Likes         *LikeService
	Chests        *ChestService
	Leaderboards  *LeaderboardService
	Songs         *SongService
	Sync          *SyncService
}

func New(d Deps) *Services {
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	if d.ChestEngine == nil {
		d.ChestEngine = chest.New()
	}
	deps := &d
	return &Services{
		Auth:          &AuthService{d: deps},
		Users:         &UserService{d: deps},
		Levels:        &LevelService{d: deps},
		LevelData:     &LevelData{blobs: d.Blobs},
		SaveData:      &SaveData{blobs: d.Blobs},
		Schedules:     &ScheduleService{d: deps},
		Comments:      &CommentService{d: deps},
		Friends:       &FriendRequestService{d: deps},
		Relationships: &RelationshipService{d: deps},
		Messages:      &MessageService{d: deps},
		Likes:         &LikeService{d: deps},
		Chests:        &ChestService{d: deps},
		Leaderboards:  &LeaderboardService{d: deps},
		Songs:         &SongService{d: deps},
		Sync:          &SyncService{d: deps},
	}
}

// inTx runs fn in the request transaction, opening one when ctx has none.
func (d *Deps) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.InTx(ctx, d.DB, fn)
}

// orKind replaces a not-found error with the domain kind k.
func orKind(err error, k Kind) error {
	if errors.Is(err, dom.ErrNotFound) {
		return fail(k)
	}
	return err
}

// user loads a user, mapping absence to UserNotFound.
func (d *Deps) user(ctx context.Context, id int) (*dom.User, error) {
	u, err := d.Users.FromID(ctx, id)
	if err != nil {
		return nil, orKind(err, UserNotFound)
	}
	return u, nil
}

// blocked reports whether either user blocks the other.
func (d *Deps) blocked(ctx context.Context, a, b int) (bool, error) {
	for _, pair := range [][2]int{{a, b}, {b, a}} {
		_, err := d.Relationships.Between(ctx, dom.RelationshipBlocked, pair[0], pair[1])
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, dom.ErrNotFound) {
			return false, err
		}
	}
	return false, nil
}

// friends reports whether a holds a live friendship edge to b.
func (d *Deps) friends(ctx context.Context, a, b int) (bool, error) {
	_, err := d.Relationships.Between(ctx, dom.RelationshipFriend, a, b)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, dom.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func ptr[T any](v T) *T { return &v }
