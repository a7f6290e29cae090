package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

func TestUploadThenDownload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Author")
	l := f.upload(t, a, "Test")

	if l.CustomSongID != nil || l.OfficialSongID == nil {
		t.Fatalf("song ids = %v, %v", l.CustomSongID, l.OfficialSongID)
	}
	d, err := f.Levels.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if d.Data != "DATA" || d.Level.Name != "Test" || d.Level.Downloads != 1 {
		t.Fatalf("download = %+v / %q", d.Level, d.Data)
	}
	again, _ := f.deps.Levels.FromID(ctx, l.ID)
	if again.Downloads != 1 {
		t.Fatalf("stored downloads = %d", again.Downloads)
	}
}

func TestUploadCustomSong(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Author")
	f.upstream.songs[500] = &dom.Song{Name: "Song", Author: "Band", DownloadURL: "https://x/500.mp3"}

	l, err := f.Levels.Upload(ctx, a.ID, LevelUpload{Name: "Custom", CustomSongID: 500, OfficialSongID: 3, Data: "x"})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if l.CustomSongID == nil || *l.CustomSongID != 500 || l.OfficialSongID != nil {
		t.Fatalf("song ids = %v, %v", l.CustomSongID, l.OfficialSongID)
	}
	if _, err := f.deps.Songs.FromID(ctx, 500); err != nil {
		t.Fatalf("song not stored on read-through: %v", err)
	}

	_, err = f.Levels.Upload(ctx, a.ID, LevelUpload{Name: "Missing", CustomSongID: 501, Data: "x"})
	wantKind(t, err, LevelsInvalidCustomSong)
}

func TestUploadUpdatePermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Author")
	b := f.register(t, "Other")
	l := f.upload(t, a, "Mine")

	_, err := f.Levels.Upload(ctx, b.ID, LevelUpload{ID: l.ID, Name: "Stolen", Data: "x"})
	wantKind(t, err, LevelsNoUpdatePermission)

	locked := true
	if _, err := f.deps.Levels.Update(ctx, l.ID, dom.LevelUpdate{UpdateLocked: &locked}); err != nil {
		t.Fatal(err)
	}
	_, err = f.Levels.Upload(ctx, a.ID, LevelUpload{ID: l.ID, Name: "Mine v2", Data: "x"})
	wantKind(t, err, LevelsUpdateLocked)
}

func TestDescriptionBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Author")
	l := f.upload(t, a, "Desc")

	if _, err := f.Levels.UpdateDescription(ctx, a.ID, l.ID, strings.Repeat("d", 256)); err != nil {
		t.Fatalf("256 bytes: %v", err)
	}
	_, err := f.Levels.UpdateDescription(ctx, a.ID, l.ID, strings.Repeat("d", 257))
	wantKind(t, err, LevelsInvalidDescription)
}

func TestRateCreditsCreatorPoints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Author")
	mod := f.register(t, "Mod")
	l := f.upload(t, a, "Rated")

	_, err := f.Levels.Rate(ctx, mod.ID, l.ID, Rating{Stars: 5})
	wantKind(t, err, LevelsNoRatePermission)

	f.grant(t, mod, privilege.LevelRateStars)
	epic := dom.FlagEpic
	rated, err := f.Levels.Rate(ctx, mod.ID, l.ID, Rating{Stars: 5, FeatureOrder: ptr(1), Flags: &epic})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rated.Difficulty != dom.DifficultyHard {
		t.Fatalf("difficulty = %d", rated.Difficulty)
	}
	author, _ := f.deps.Users.FromID(ctx, a.ID)
	if author.CreatorPoints != 3 {
		t.Fatalf("creator points = %d, want 3", author.CreatorPoints)
	}
	if rank, _ := f.board.CreatorRank(ctx, a.ID); rank != 1 {
		t.Fatalf("creator rank = %d", rank)
	}

	none := dom.SearchFlag(0)
	if _, err := f.Levels.Rate(ctx, mod.ID, l.ID, Rating{Stars: 0, FeatureOrder: ptr(0), Flags: &none}); err != nil {
		t.Fatal(err)
	}
	author, _ = f.deps.Users.FromID(ctx, a.ID)
	if author.CreatorPoints != 0 {
		t.Fatalf("creator points after unrate = %d", author.CreatorPoints)
	}
}

func TestRateDemon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Author")
	f.grant(t, a, privilege.LevelRateStars)
	l := f.upload(t, a, "Demon")

	_, err := f.Levels.RateDemon(ctx, a.ID, l.ID, 5)
	wantKind(t, err, LevelsNotDemon)

	if _, err := f.Levels.Rate(ctx, a.ID, l.ID, Rating{Stars: 10}); err != nil {
		t.Fatal(err)
	}
	got, err := f.Levels.RateDemon(ctx, a.ID, l.ID, 5)
	if err != nil {
		t.Fatalf("rate demon: %v", err)
	}
	if got.DemonDifficulty == nil || *got.DemonDifficulty != dom.DemonExtreme {
		t.Fatalf("demon difficulty = %v", got.DemonDifficulty)
	}
}

func TestDeleteLevel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Author")
	b := f.register(t, "Other")
	l := f.upload(t, a, "Gone")

	wantKind(t, f.Levels.Delete(ctx, b.ID, l.ID), LevelsNoDeletePermission)
	if err := f.Levels.Delete(ctx, a.ID, l.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := f.index.Level(l.ID); ok {
		t.Fatal("deleted level still indexed")
	}
	_, err := f.Levels.Get(ctx, l.ID)
	wantKind(t, err, LevelsNotFound)
}

func TestDailyLevel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Author")
	l := f.upload(t, a, "Daily")

	_, err := f.Levels.Get(ctx, DailyLevelID)
	wantKind(t, err, LevelScheduleUnset)

	slot, err := f.Schedules.Enqueue(ctx, 0, l.ID, dom.ScheduleWeekly)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d, err := f.Levels.Get(ctx, WeeklyLevelID)
	if err != nil {
		t.Fatalf("get weekly: %v", err)
	}
	if d.Level.ID != l.ID || d.Schedule == nil || d.Schedule.WireID() != slot.ID+100000 {
		t.Fatalf("weekly = %+v", d)
	}

	l2 := f.upload(t, a, "Weekly two")
	next, err := f.Schedules.Enqueue(ctx, 0, l2.ID, dom.ScheduleWeekly)
	if err != nil {
		t.Fatal(err)
	}
	if !next.StartTs.Equal(slot.EndTs) {
		t.Fatalf("second slot starts %v, want %v", next.StartTs, slot.EndTs)
	}

	f.now = f.now.Add(WeeklySlot + time.Hour)
	page, err := f.Levels.Search(ctx, a.ID, dom.LevelSearchQuery{Type: dom.SearchWeekly, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 || len(page.Levels) != 2 || page.Levels[0].ID != l2.ID {
		t.Fatalf("weekly history total=%d levels=%+v", page.Total, page.Levels)
	}
}

func TestSearchNumericDirectHit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "Author")
	var last *dom.Level
	for i := 0; i < 3; i++ {
		last = f.upload(t, a, "Level")
	}
	f.upload(t, a, "Target")

	page, err := f.Levels.Search(ctx, a.ID, dom.LevelSearchQuery{Type: dom.SearchQuery, Query: "3", PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Levels) == 0 || page.Levels[0].ID != last.ID {
		t.Fatalf("first result = %+v", page.Levels)
	}
	if len(page.Users) != 1 || page.Users[0].ID != a.ID {
		t.Fatalf("users = %+v", page.Users)
	}
}

func TestRolledBackWritesSkipIndexAndBoard(t *testing.T) {
	f := newFixture(t)
	a := f.register(t, "Author")
	mod := f.register(t, "Mod")
	f.grant(t, mod, privilege.LevelRateStars)
	rated := f.upload(t, a, "Rated")

	tx := f.deps.DB.Begin()
	ctx := db.WithTx(context.Background(), tx)
	l, err := f.Levels.Upload(ctx, a.ID, LevelUpload{Name: "Ghost", OfficialSongID: 1, Length: dom.LengthShort, Data: "DATA"})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := f.Levels.Rate(ctx, mod.ID, rated.ID, Rating{Stars: 5}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if err := tx.Rollback().Error; err != nil {
		t.Fatal(err)
	}

	if _, ok := f.index.Level(l.ID); ok {
		t.Fatal("rolled back level is still indexed")
	}
	if doc, _ := f.index.Level(rated.ID); doc.Stars != 0 {
		t.Fatalf("indexed stars = %d after rollback", doc.Stars)
	}
	if rank, _ := f.board.CreatorRank(context.Background(), a.ID); rank != 0 {
		t.Fatalf("creator rank = %d after rollback", rank)
	}

	tx = f.deps.DB.Begin()
	ctx = db.WithTx(context.Background(), tx)
	l, err = f.Levels.Upload(ctx, a.ID, LevelUpload{Name: "Kept", OfficialSongID: 1, Length: dom.LengthShort, Data: "DATA"})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, ok := f.index.Level(l.ID); ok {
		t.Fatal("level indexed before commit")
	}
	if err := tx.Commit().Error; err != nil {
		t.Fatal(err)
	}
	db.Committed(ctx)
	if _, ok := f.index.Level(l.ID); !ok {
		t.Fatal("committed level missing from index")
	}
}
