package service

import (
	"context"
	"testing"
	"time"

	"github.com/gdps-go/gdps/internal/chest"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
	"github.com/gdps-go/gdps/internal/search"
)

func TestChestCooldown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Alice")

	st, err := f.Chests.Open(ctx, u.ID, dom.ChestView)
	if err != nil {
		t.Fatal(err)
	}
	if st.SmallRemaining != 0 || st.LargeRemaining != 0 || st.Claimed != nil {
		t.Fatalf("fresh state = %+v", st)
	}

	st, err = f.Chests.Open(ctx, u.ID, dom.ChestSmall)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if st.Claimed == nil || st.SmallCount != 1 || st.SmallRemaining != chest.SmallCooldown {
		t.Fatalf("claim state = %+v", st)
	}
	_, err = f.Chests.Open(ctx, u.ID, dom.ChestSmall)
	wantKind(t, err, DailyChestsAlreadyClaimed)

	start := f.now
	f.now = start.Add(chest.SmallCooldown - time.Second)
	st, err = f.Chests.Open(ctx, u.ID, dom.ChestView)
	if err != nil || st.SmallRemaining != time.Second {
		t.Fatalf("remaining = %v, %v", st, err)
	}
	_, err = f.Chests.Open(ctx, u.ID, dom.ChestSmall)
	wantKind(t, err, DailyChestsAlreadyClaimed)

	f.now = start.Add(chest.SmallCooldown)
	st, err = f.Chests.Open(ctx, u.ID, dom.ChestSmall)
	if err != nil {
		t.Fatalf("claim at boundary: %v", err)
	}
	if st.SmallCount != 2 {
		t.Fatalf("small count = %d", st.SmallCount)
	}

	if _, err := f.Chests.Open(ctx, u.ID, dom.ChestLarge); err != nil {
		t.Fatalf("large claim: %v", err)
	}
}

func TestLikeOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Alice")
	b := f.register(t, "Bob")
	l := f.upload(t, a, "Liked")

	if err := f.Likes.Like(ctx, b.ID, dom.LikeTargetLevel, l.ID, true); err != nil {
		t.Fatalf("like: %v", err)
	}
	wantKind(t, f.Likes.Like(ctx, b.ID, dom.LikeTargetLevel, l.ID, false), LikesAlreadyLiked)
	wantKind(t, f.Likes.Like(ctx, b.ID, dom.LikeTargetLevel, 9999, true), LikesInvalidTarget)

	sum, err := f.deps.Likes.Sum(ctx, dom.LikeTargetLevel, l.ID)
	if err != nil || sum != 1 {
		t.Fatalf("sum = %d, %v", sum, err)
	}
	got, _ := f.deps.Levels.FromID(ctx, l.ID)
	if got.Likes != 1 {
		t.Fatalf("level likes = %d", got.Likes)
	}

	c, err := f.Comments.PostUserComment(ctx, a.ID, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Likes.Like(ctx, b.ID, dom.LikeTargetUserComment, c.ID, false); err != nil {
		t.Fatal(err)
	}
	if sum, _ := f.deps.Likes.Sum(ctx, dom.LikeTargetUserComment, c.ID); sum != -1 {
		t.Fatalf("comment sum = %d", sum)
	}
}

func TestSyncLevels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Alice")
	mod := f.register(t, "Mod")
	f.grant(t, mod, privilege.LevelRateStars)
	kept := f.upload(t, a, "Kept")
	gone := f.upload(t, a, "Gone")
	if _, err := f.Levels.Rate(ctx, mod.ID, kept.ID, Rating{Stars: 5}); err != nil {
		t.Fatal(err)
	}
	if err := f.Levels.Delete(ctx, a.ID, gone.ID); err != nil {
		t.Fatal(err)
	}

	fresh := search.NewMemory()
	d := f.deps
	d.LevelIndex = fresh
	d.UserIndex = fresh
	svc := New(d)
	n, err := svc.Sync.Levels(ctx)
	if err != nil || n != 1 {
		t.Fatalf("synced %d, %v", n, err)
	}
	doc, ok := fresh.Level(kept.ID)
	if !ok || doc.Stars != 5 || doc.Difficulty != int(dom.DifficultyHard) {
		t.Fatalf("doc = %+v, %v", doc, ok)
	}
	if _, ok := fresh.Level(gone.ID); ok {
		t.Fatal("deleted level indexed")
	}

	if n, err := svc.Sync.Users(ctx); err != nil || n != 2 {
		t.Fatalf("synced users %d, %v", n, err)
	}
	if _, ok := fresh.User(mod.ID); !ok {
		t.Fatal("user missing from index")
	}
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Alice")
	b := f.register(t, "Bob")
	l := f.upload(t, a, "Commented")

	_, err := f.Comments.PostLevelComment(ctx, b.ID, l.ID, "", 0)
	wantKind(t, err, CommentsInvalidContent)
	_, err = f.Comments.PostLevelComment(ctx, b.ID, 9999, "nice", 0)
	wantKind(t, err, CommentsTargetNotFound)

	c, err := f.Comments.PostLevelComment(ctx, b.ID, l.ID, "nice", 140)
	if err != nil {
		t.Fatal(err)
	}
	if c.Percent != 100 {
		t.Fatalf("percent = %d", c.Percent)
	}
	page, err := f.Comments.ListLevelComments(ctx, l.ID, 0, 10, false)
	if err != nil || page.Total != 1 || page.Authors[b.ID] == nil {
		t.Fatalf("page = %+v, %v", page, err)
	}

	if _, err := f.Users.UpdateSettings(ctx, b.ID, Settings{CommentPrivacy: dom.PrivacyPrivate}); err != nil {
		t.Fatal(err)
	}
	_, err = f.Comments.ListHistory(ctx, a.ID, b.ID, 0, 10, false)
	wantKind(t, err, UserPrivate)
	if _, err := f.Comments.ListHistory(ctx, b.ID, b.ID, 0, 10, false); err != nil {
		t.Fatalf("own history: %v", err)
	}

	// The level's author may remove comments left on it.
	c2, _ := f.Comments.PostLevelComment(ctx, b.ID, l.ID, "again", 0)
	if err := f.Comments.DeleteLevelComment(ctx, a.ID, c2.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	uc, _ := f.Comments.PostUserComment(ctx, a.ID, "profile post")
	wantKind(t, f.Comments.DeleteUserComment(ctx, b.ID, uc.ID), CommentsInvalidOwner)
	if err := f.Comments.DeleteUserComment(ctx, a.ID, uc.ID); err != nil {
		t.Fatal(err)
	}
}
