package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gdps-go/gdps/internal/db"
	"github.com/gdps-go/gdps/internal/objstore"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
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
)

type fakeUpstream struct {
	songs map[int]*dom.Song
}

func (f *fakeUpstream) SongInfo(_ context.Context, id int) (*dom.Song, error) {
	s, ok := f.songs[id]
	if !ok {
		return nil, dom.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

type fixture struct {
	*Services
	deps     Deps
	now      time.Time
	index    *search.Memory
	board    *redisrepo.Leaderboard
	upstream *fakeUpstream
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := db.Open("file:" + filepath.Join(t.TempDir(), "gdps.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := gormrepo.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rc.Close() })

	f := &fixture{
		now:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		index:    search.NewMemory(),
		board:    redisrepo.NewLeaderboard(rc, ""),
		upstream: &fakeUpstream{songs: map[int]*dom.Song{}},
	}
	f.deps = Deps{
		DB:             gdb,
		Users:          usersgorm.New(gdb, f.index),
		Credentials:    usersgorm.NewCredentialRepo(gdb),
		Levels:         levelsgorm.New(gdb, f.index),
		Schedules:      levelsgorm.NewScheduleRepo(gdb),
		LevelComments:  commentsgorm.NewLevelRepo(gdb),
		UserComments:   commentsgorm.NewUserRepo(gdb),
		Messages:       messagesgorm.New(gdb),
		FriendRequests: socialgorm.NewFriendRequestRepo(gdb),
		Relationships:  socialgorm.NewRelationshipRepo(gdb),
		Likes:          likesgorm.New(gdb),
		Chests:         chestsgorm.New(gdb),
		Songs:          levelsgorm.NewSongRepo(gdb),
		Events:         eventsgorm.New(gdb),
		Leaderboard:    f.board,
		Passwords:      redisrepo.NewPasswordCache(rc, ""),
		UserIndex:      f.index,
		LevelIndex:     f.index,
		Blobs:          objstore.Blobs{Store: objstore.NewMemory()},
		Upstream:       f.upstream,
		Now:            func() time.Time { return f.now },
	}
	f.Services = New(f.deps)
	return f
}

func (f *fixture) register(t *testing.T, name string) *dom.User {
	t.Helper()
	u, err := f.Auth.Register(context.Background(), name, "secret1", name+"@x.io")
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return u
}

func (f *fixture) grant(t *testing.T, u *dom.User, ps ...privilege.Privilege) {
	t.Helper()
	set := u.Privileges
	for _, p := range ps {
		set = set.With(p)
	}
	got, err := f.Users.UpdatePrivileges(context.Background(), u.ID, set)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	*u = *got
}

func (f *fixture) upload(t *testing.T, u *dom.User, name string) *dom.Level {
	t.Helper()
	l, err := f.Levels.Upload(context.Background(), u.ID, LevelUpload{
		Name:           name,
		OfficialSongID: 1,
		Length:         dom.LengthMedium,
		Data:           "DATA",
	})
	if err != nil {
		t.Fatalf("upload %s: %v", name, err)
	}
	return l
}

func wantKind(t *testing.T, err error, k Kind) {
	t.Helper()
	if !IsKind(err, k) {
		t.Fatalf("err = %v, want %s", err, k)
	}
}
