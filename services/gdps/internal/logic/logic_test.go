package logic

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gdps-go/gdps/internal/codec"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

func TestIntList(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"-", nil},
		{"1,2,3", []int{1, 2, 3}},
		{"(4, 5)", []int{4, 5}},
		{"7,x,8", []int{7, 8}},
	}
	for _, tt := range tests {
		if got := intList(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("intList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecodeText(t *testing.T) {
	got, err := decodeText(codec.EncodeBase64String("hello"))
	if err != nil || got != "hello" {
		t.Fatalf("decodeText = %q, %v", got, err)
	}
	if got, err := decodeText(""); err != nil || got != "" {
		t.Fatalf("empty = %q, %v", got, err)
	}
	if _, err := decodeText("!!not base64!!"); !errors.Is(err, response.Failed) {
		t.Fatalf("garbage err = %v", err)
	}
}

func TestClampCount(t *testing.T) {
	if got := clampCount(0, 10); got != 10 {
		t.Fatalf("zero = %d", got)
	}
	if got := clampCount(500, 10); got != maxPageSize {
		t.Fatalf("large = %d", got)
	}
	if got := clampCount(25, 10); got != 25 {
		t.Fatalf("in range = %d", got)
	}
}

func TestSearchQuery(t *testing.T) {
	q := searchQuery(&types.GetLevelsRequest{
		Type:        0,
		Str:         "bloodbath",
		Page:        2,
		Len:         "0,4",
		Diff:        "1,-2,-3",
		DemonFilter: 5,
		Song:        3,
		Star:        1,
	})
	if q.Query != "bloodbath" || q.Page != 2 || q.PageSize != levelPageSize || !q.Rated {
		t.Fatalf("query = %+v", q)
	}
	if !slices.Equal(q.Lengths, []dom.LevelLength{0, 4}) {
		t.Fatalf("lengths = %v", q.Lengths)
	}
	if !slices.Equal(q.Difficulties, []dom.LevelDifficulty{dom.DifficultyEasy, dom.DifficultyDemon, dom.DifficultyAuto}) {
		t.Fatalf("difficulties = %v", q.Difficulties)
	}
	if q.Demon == nil || *q.Demon != dom.DemonExtreme {
		t.Fatalf("demon = %v", q.Demon)
	}
	if q.CustomSong || q.SongID != 2 {
		t.Fatalf("song = %d custom=%v", q.SongID, q.CustomSong)
	}

	custom := searchQuery(&types.GetLevelsRequest{Song: 775, CustomSong: 1})
	if !custom.CustomSong || custom.SongID != 775 {
		t.Fatalf("custom song = %d", custom.SongID)
	}

	byUser := searchQuery(&types.GetLevelsRequest{Type: int(dom.SearchUserLevels), Str: "42"})
	if byUser.AuthorID != 42 || byUser.Query != "" {
		t.Fatalf("user levels = %+v", byUser)
	}
	list := searchQuery(&types.GetLevelsRequest{Type: int(dom.SearchList), Str: "10,11,12"})
	if !slices.Equal(list.ListIDs, []int{10, 11, 12}) || list.Query != "" {
		t.Fatalf("list = %+v", list)
	}
}

func TestCommentRows(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := commentRows(&service.CommentPage{}, 0, 10, now, false); got != "-2" {
		t.Fatalf("empty = %q", got)
	}

	author := &dom.User{ID: 7, Username: "Robtop"}
	page := &service.CommentPage{
		Comments: []*dom.LevelComment{
			{ID: 1, LevelID: 99, UserID: 7, Content: "gg", PostTs: now.Add(-time.Hour)},
			{ID: 2, LevelID: 99, UserID: 8, Content: "orphan", PostTs: now},
		},
		Authors: map[int]*dom.User{7: author},
		Total:   12,
	}
	got := commentRows(page, 1, 10, now, true)
	list, pageInfo, ok := strings.Cut(got, "#")
	if !ok || pageInfo != "12:10:10" {
		t.Fatalf("rows = %q", got)
	}
	rows := strings.Split(list, codec.ListSep)
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if !strings.Contains(rows[0], "1~99") || !strings.Contains(rows[0], ":1~Robtop") {
		t.Fatalf("first row = %q", rows[0])
	}
	if strings.Contains(rows[1], "Robtop") || strings.Contains(rows[1], ":1~") {
		t.Fatalf("orphan row = %q", rows[1])
	}
}
