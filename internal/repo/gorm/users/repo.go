package usersgorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

const batchSize = 500

// Repo persists users and mirrors every write into the user index.
type Repo struct {
	db    *gorm.DB
	index dom.UserIndex
}

var _ dom.UserRepository = (*Repo)(nil)

func AutoMigrate(gdb *gorm.DB) error { return gdb.AutoMigrate(&dom.User{}, &dom.UserCredential{}) }

// New returns a repository; index may be nil when no search engine is wired.
func New(gdb *gorm.DB, index dom.UserIndex) *Repo { return &Repo{db: gdb, index: index} }

func (r *Repo) conn(ctx context.Context) *gorm.DB { return db.Conn(ctx, r.db) }

func (r *Repo) mirror(ctx context.Context, users ...*dom.User) {
	if r.index == nil || len(users) == 0 {
		return
	}
	db.AfterCommit(ctx, func(ctx context.Context) {
		if err := r.index.UpsertUsers(ctx, users...); err != nil {
			logx.WithContext(ctx).Errorf("user index upsert: %v", err)
		}
	})
}

func (r *Repo) FromID(ctx context.Context, id int) (*dom.User, error) {
	var u dom.User
	if err := r.conn(ctx).First(&u, id).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &u, nil
}

// FromIDs returns the users in the order of ids; unknown ids are skipped.
func (r *Repo) FromIDs(ctx context.Context, ids []int) ([]*dom.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var arr []*dom.User
	if err := r.conn(ctx).Where("id IN ?", ids).Find(&arr).Error; err != nil {
		return nil, err
	}
	byID := make(map[int]*dom.User, len(arr))
	for _, u := range arr {
		byID[u.ID] = u
	}
	out := make([]*dom.User, 0, len(arr))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *Repo) FromUsername(ctx context.Context, username string) (*dom.User, error) {
	var u dom.User
	if err := r.conn(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &u, nil
}

func (r *Repo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.conn(ctx).Model(&dom.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (r *Repo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.conn(ctx).Model(&dom.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *Repo) Create(ctx context.Context, u *dom.User) error {
	if err := r.conn(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	r.mirror(ctx, u)
	return nil
}

// Update writes only the supplied columns and returns the fresh row.
func (r *Repo) Update(ctx context.Context, id int, upd dom.UserUpdate) (*dom.User, error) {
	cols := updateColumns(upd)
	if len(cols) > 0 {
		res := r.conn(ctx).Model(&dom.User{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return nil, fmt.Errorf("update user %d: %w", id, res.Error)
		}
	}
	u, err := r.FromID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		r.mirror(ctx, u)
	}
	return u, nil
}

func (r *Repo) Search(ctx context.Context, q dom.UserSearchQuery) (dom.SearchResult, error) {
	if r.index == nil {
		return dom.SearchResult{}, errors.New("user index not configured")
	}
	return r.index.SearchUsers(ctx, q)
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&dom.User{}).Count(&n).Error
	return n, err
}

// Each walks every user in id order in batches.
func (r *Repo) Each(ctx context.Context, fn func(u *dom.User) error) error {
	var batch []*dom.User
	return r.conn(ctx).Order("id").FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		for _, u := range batch {
			if err := fn(u); err != nil {
				return err
			}
		}
		return nil
	}).Error
}

func updateColumns(u dom.UserUpdate) map[string]any {
	m := map[string]any{}
	setStr := func(col string, v *string) {
		if v != nil {
			m[col] = *v
		}
	}
	setInt := func(col string, v *int) {
		if v != nil {
			m[col] = *v
		}
	}
	setStr("username", u.Username)
	setStr("email", u.Email)
	if u.Privileges != nil {
		m["privileges"] = u.Privileges.Bytes()
	}
	if u.MessagePrivacy != nil {
		m["message_privacy"] = int(*u.MessagePrivacy)
	}
	if u.FriendPrivacy != nil {
		m["friend_privacy"] = int(*u.FriendPrivacy)
	}
	if u.CommentPrivacy != nil {
		m["comment_privacy"] = int(*u.CommentPrivacy)
	}
	setStr("youtube_name", u.YoutubeName)
	setStr("twitter_name", u.TwitterName)
	setStr("twitch_name", u.TwitchName)
	setInt("stars", u.Stars)
	setInt("demons", u.Demons)
	setInt("moons", u.Moons)
	setInt("primary_colour", u.PrimaryColour)
	setInt("secondary_colour", u.SecondaryColour)
	setInt("glow_colour", u.GlowColour)
	setInt("display_type", u.DisplayType)
	setInt("icon", u.Icon)
	setInt("ship", u.Ship)
	setInt("ball", u.Ball)
	setInt("ufo", u.Ufo)
	setInt("wave", u.Wave)
	setInt("robot", u.Robot)
	setInt("spider", u.Spider)
	setInt("swing_copter", u.SwingCopter)
	setInt("jetpack", u.Jetpack)
	if u.Glow != nil {
		m["glow"] = *u.Glow
	}
	setInt("explosion", u.Explosion)
	setInt("creator_points", u.CreatorPoints)
	setInt("diamonds", u.Diamonds)
	setInt("coins", u.Coins)
	setInt("user_coins", u.UserCoins)
	setStr("comment_colour", u.CommentColour)
	return m
}
