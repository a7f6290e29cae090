package search

import (
	"slices"
	"time"

	dom "github.com/gdps-go/gdps/internal/ports"
)

type sortKey struct {
	field string
	desc  bool
}

// levelOrder is the result ordering of each search mode.
func levelOrder(t dom.SearchType) []sortKey {
	switch t {
	case dom.SearchMostDownloads:
		return []sortKey{{"downloads", true}, {"id", true}}
	case dom.SearchQuery, dom.SearchMostLiked, dom.SearchTrending:
		return []sortKey{{"likes", true}, {"id", true}}
	case dom.SearchFeatured, dom.SearchEpic:
		return []sortKey{{"feature_order", true}, {"id", true}}
	}
	return []sortKey{{"id", true}}
}

func visible(d LevelDocument, q dom.LevelSearchQuery) bool {
	own := q.RequesterID != 0 && d.UserID == q.RequesterID
	switch dom.LevelPublicity(d.Publicity) {
	case dom.PublicityPublic:
		return true
	case dom.PublicityFriendsSearchable:
		return own || slices.Contains(q.FriendIDs, d.UserID)
	}
	return own && q.Type == dom.SearchUserLevels
}

// matchLevel applies every filter and mode restriction except free text.
func matchLevel(d LevelDocument, q dom.LevelSearchQuery) bool {
	if !visible(d, q) {
		return false
	}
	if len(q.Lengths) > 0 && !slices.Contains(q.Lengths, dom.LevelLength(d.Length)) {
		return false
	}
	if len(q.Difficulties) > 0 && !slices.Contains(q.Difficulties, dom.LevelDifficulty(d.Difficulty)) {
		return false
	}
	if q.Demon != nil && d.DemonDifficulty != int(*q.Demon) {
		return false
	}
	if q.Uncompleted && slices.Contains(q.Completed, d.ID) {
		return false
	}
	if q.OnlyComplete && !slices.Contains(q.Completed, d.ID) {
		return false
	}
	if q.SongID > 0 {
		if q.CustomSong && d.CustomSongID != q.SongID {
			return false
		}
		if !q.CustomSong && (d.CustomSongID != 0 || d.OfficialSongID != q.SongID) {
			return false
		}
	}
	if q.Featured && d.FeatureOrder <= 0 {
		return false
	}
	if q.Original && d.OriginalID != 0 {
		return false
	}
	if q.TwoPlayer && !d.TwoPlayer {
		return false
	}
	if q.Rated && d.Stars <= 0 {
		return false
	}
	if q.Unrated && d.Stars > 0 {
		return false
	}
	if q.Epic && !d.Epic {
		return false
	}
	if q.Coins && !(d.Coins > 0 && d.CoinsVerified) {
		return false
	}

	switch q.Type {
	case dom.SearchTrending:
		return d.UploadTs >= now(q).Add(-trendingWindow).Unix()
	case dom.SearchUserLevels:
		return d.UserID == q.AuthorID
	case dom.SearchFeatured:
		return d.FeatureOrder > 0
	case dom.SearchMagic:
		return d.Magic
	case dom.SearchModerator:
		return d.Stars == 0 && d.RequestedStars > 0
	case dom.SearchList:
		return slices.Contains(q.ListIDs, d.ID)
	case dom.SearchAwarded:
		return d.Stars > 0 || d.Awarded
	case dom.SearchFollowed:
		return slices.Contains(q.Followed, d.UserID)
	case dom.SearchFriends:
		return slices.Contains(q.FriendIDs, d.UserID)
	case dom.SearchEpic:
		return d.Epic
	}
	return true
}

func now(q dom.LevelSearchQuery) time.Time {
	if q.Now.IsZero() {
		return time.Now()
	}
	return q.Now
}
