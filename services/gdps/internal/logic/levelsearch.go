package logic

import (
	"strconv"
	"strings"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

// searchQuery translates the getGJLevels form. Filters the client sends as
// "-" are unset.
func searchQuery(req *types.GetLevelsRequest) dom.LevelSearchQuery {
	q := dom.LevelSearchQuery{
		Query:        req.Str,
		Type:         dom.SearchType(req.Type),
		Page:         max(req.Page, 0),
		PageSize:     levelPageSize,
		Completed:    intList(req.CompletedLevels),
		Uncompleted:  req.Uncompleted != 0,
		OnlyComplete: req.OnlyCompleted != 0,
		Followed:     intList(req.Followed),
		Featured:     req.Featured != 0,
		Original:     req.Original != 0,
		TwoPlayer:    req.TwoPlayer != 0,
		Rated:        req.Star != 0,
		Unrated:      req.NoStar != 0,
		Epic:         req.Epic != 0,
		Coins:        req.Coins != 0,
	}
	for _, n := range intList(req.Len) {
		q.Lengths = append(q.Lengths, dom.LevelLength(n))
	}
	for _, n := range intList(req.Diff) {
		switch {
		case n == -1:
			q.Difficulties = append(q.Difficulties, dom.DifficultyNA)
		case n == -2:
			q.Difficulties = append(q.Difficulties, dom.DifficultyDemon)
			if d, ok := dom.DemonFromRating(req.DemonFilter); ok {
				q.Demon = &d
			}
		case n == -3:
			q.Difficulties = append(q.Difficulties, dom.DifficultyAuto)
		case n >= 1 && n <= 5:
			q.Difficulties = append(q.Difficulties, dom.LevelDifficulty(n+1))
		}
	}
	if req.Song > 0 {
		q.CustomSong = req.CustomSong != 0
		q.SongID = req.Song
		if !q.CustomSong {
			// Official tracks are sent one-based.
			q.SongID = req.Song - 1
		}
	}

	switch q.Type {
	case dom.SearchUserLevels:
		q.AuthorID, _ = strconv.Atoi(strings.TrimSpace(req.Str))
		q.Query = ""
	case dom.SearchList:
		q.ListIDs = intList(req.Str)
		q.Query = ""
	}
	return q
}
