package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

const (
	LevelNameMaxLen = 32
	TextMaxBytes    = 256

	DailyLevelID  = -1
	WeeklyLevelID = -2
)

type LevelService struct{ d *Deps }

// LevelUpload is an uploaded level. ID is zero for a new level. Text fields
// are already base64-decoded.
type LevelUpload struct {
	ID             int
	Name           string
	Description    string
	CustomSongID   int
	OfficialSongID int
	Version        int
	Length         dom.LevelLength
	TwoPlayer      bool
	Unlisted       bool
	RenderStr      string
	GameVersion    int
	BinaryVersion  int
	OriginalID     int
	RequestedStars int
	LowDetailMode  bool
	ObjectCount    int
	Coins          int
	CopyPassword   int
	Data           string
}

// Upload creates a level, or updates it when up.ID names one of the
// uploader's own levels. The body is written to level storage after the row.
func (s *LevelService) Upload(ctx context.Context, userID int, up LevelUpload) (*dom.Level, error) {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.Privileges.Has(privilege.LevelUpload) {
		return nil, fail(LevelsNoUploadPermission)
	}
	if n := utf8.RuneCountInString(up.Name); n == 0 || n > LevelNameMaxLen {
		return nil, fail(LevelsInvalidName)
	}
	if len(up.Description) > TextMaxBytes {
		return nil, fail(LevelsInvalidDescription)
	}

	var custom, official *int
	if up.CustomSongID > 0 {
		if _, err := (&SongService{d: s.d}).Get(ctx, up.CustomSongID, false); err != nil {
			if KindOf(err) != "" {
				return nil, fail(LevelsInvalidCustomSong)
			}
			return nil, err
		}
		custom = ptr(up.CustomSongID)
	} else {
		official = ptr(up.OfficialSongID)
	}
	var original *int
	if up.OriginalID > 0 {
		original = ptr(up.OriginalID)
	}
	publicity := dom.PublicityPublic
	if up.Unlisted {
		publicity = dom.PublicityFriendsUnlisted
	}
	now := s.d.Now()

	var l *dom.Level
	if up.ID > 0 {
		old, err := s.d.Levels.FromID(ctx, up.ID)
		if err != nil {
			return nil, orKind(err, LevelsNotFound)
		}
		if old.Deleted {
			return nil, fail(LevelsNotFound)
		}
		if old.UserID != userID || !u.Privileges.Has(privilege.LevelUpdate) {
			return nil, fail(LevelsNoUpdatePermission)
		}
		if old.UpdateLocked {
			return nil, fail(LevelsUpdateLocked)
		}
		l, err = s.d.Levels.Update(ctx, old.ID, dom.LevelUpdate{
			Name:           &up.Name,
			Description:    &up.Description,
			CustomSongID:   &custom,
			OfficialSongID: &official,
			Version:        &up.Version,
			Length:         &up.Length,
			TwoPlayer:      &up.TwoPlayer,
			Publicity:      &publicity,
			RenderStr:      &up.RenderStr,
			GameVersion:    &up.GameVersion,
			BinaryVersion:  &up.BinaryVersion,
			UpdateTs:       &now,
			OriginalID:     &original,
			RequestedStars: &up.RequestedStars,
			LowDetailMode:  &up.LowDetailMode,
			ObjectCount:    &up.ObjectCount,
			Coins:          &up.Coins,
			CopyPassword:   &up.CopyPassword,
		})
		if err != nil {
			return nil, err
		}
	} else {
		l = &dom.Level{
			Name:           up.Name,
			UserID:         userID,
			Description:    up.Description,
			CustomSongID:   custom,
			OfficialSongID: official,
			Version:        max(up.Version, 1),
			Length:         up.Length,
			TwoPlayer:      up.TwoPlayer,
			Publicity:      publicity,
			RenderStr:      up.RenderStr,
			GameVersion:    up.GameVersion,
			BinaryVersion:  up.BinaryVersion,
			UploadTs:       now,
			UpdateTs:       now,
			OriginalID:     original,
			RequestedStars: up.RequestedStars,
			LowDetailMode:  up.LowDetailMode,
			ObjectCount:    up.ObjectCount,
			Coins:          up.Coins,
			CopyPassword:   up.CopyPassword,
		}
		if err := s.d.Levels.Create(ctx, l); err != nil {
			return nil, err
		}
	}

	if err := (&LevelData{blobs: s.d.Blobs}).Put(ctx, l.ID, up.Data); err != nil {
		return nil, err
	}
	logx.WithContext(ctx).Infof("user %d uploaded level %d", userID, l.ID)
	return l, nil
}

// Rating is a moderator rating of a level. Nil fields keep their value.
type Rating struct {
	Stars         int
	FeatureOrder  *int
	CoinsVerified *bool
	Flags         *dom.SearchFlag
}

// creatorPointFlags each award a creator point while set.
var creatorPointFlags = []dom.SearchFlag{dom.FlagEpic, dom.FlagLegendary, dom.FlagMythical}

// creatorPointDelta is the change in the author's creator points caused by
// moving a level from before to after.
func creatorPointDelta(before, after *dom.Level) int {
	step := func(was, is bool) int {
		switch {
		case !was && is:
			return 1
		case was && !is:
			return -1
		}
		return 0
	}
	delta := step(before.Stars > 0, after.Stars > 0)
	delta += step(before.FeatureOrder > 0, after.FeatureOrder > 0)
	for _, f := range creatorPointFlags {
		delta += step(before.SearchFlags.Has(f), after.SearchFlags.Has(f))
	}
	return delta
}

// Rate sets a level's stars and distinctions and credits its author.
func (s *LevelService) Rate(ctx context.Context, raterID, levelID int, r Rating) (*dom.Level, error) {
	rater, err := s.d.user(ctx, raterID)
	if err != nil {
		return nil, err
	}
	if !rater.Privileges.Has(privilege.LevelRateStars) {
		return nil, fail(LevelsNoRatePermission)
	}
	old, err := s.d.Levels.FromID(ctx, levelID)
	if err != nil {
		return nil, orKind(err, LevelsNotFound)
	}

	stars := max(r.Stars, 0)
	difficulty := dom.DifficultyFromStars(stars)
	upd := dom.LevelUpdate{
		Stars:         &stars,
		Difficulty:    &difficulty,
		FeatureOrder:  r.FeatureOrder,
		CoinsVerified: r.CoinsVerified,
		SearchFlags:   r.Flags,
	}
	switch {
	case difficulty == dom.DifficultyDemon && old.DemonDifficulty == nil:
		upd.DemonDifficulty = ptr(ptr(dom.DemonHard))
	case difficulty != dom.DifficultyDemon && old.DemonDifficulty != nil:
		upd.DemonDifficulty = ptr[*dom.DemonDifficulty](nil)
	}
	l, err := s.d.Levels.Update(ctx, levelID, upd)
	if err != nil {
		return nil, err
	}

	if delta := creatorPointDelta(old, l); delta != 0 {
		if err := s.creditAuthor(ctx, l.UserID, delta); err != nil {
			return nil, err
		}
	}
	logx.WithContext(ctx).Infof("user %d rated level %d: %d stars", raterID, levelID, stars)
	return l, nil
}

func (s *LevelService) creditAuthor(ctx context.Context, authorID, delta int) error {
	author, err := s.d.Users.FromID(ctx, authorID)
	if errors.Is(err, dom.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	points := max(author.CreatorPoints+delta, 0)
	author, err = s.d.Users.Update(ctx, authorID, dom.UserUpdate{CreatorPoints: &points})
	if err != nil {
		return err
	}
	if author.Privileges.Has(privilege.UserCreatorLeaderboardPublic) {
		s.d.follow(ctx, "leaderboard creators", func(ctx context.Context) error { return s.d.Leaderboard.SetCreatorPoints(ctx, author.ID, points) })
	}
	return nil
}

// RateDemon sets the demon difficulty of a demon level from a 1..5 rating.
func (s *LevelService) RateDemon(ctx context.Context, raterID, levelID, rating int) (*dom.Level, error) {
	rater, err := s.d.user(ctx, raterID)
	if err != nil {
		return nil, err
	}
	if !rater.Privileges.Has(privilege.LevelRateStars) {
		return nil, fail(LevelsNoRatePermission)
	}
	l, err := s.d.Levels.FromID(ctx, levelID)
	if err != nil {
		return nil, orKind(err, LevelsNotFound)
	}
	if !l.IsDemon() {
		return nil, fail(LevelsNotDemon)
	}
	demon, ok := dom.DemonFromRating(rating)
	if !ok {
		return nil, fail(LevelsNotDemon)
	}
	return s.d.Levels.Update(ctx, levelID, dom.LevelUpdate{DemonDifficulty: ptr(&demon)})
}

// Delete flags a level deleted, which also drops it from the search index.
func (s *LevelService) Delete(ctx context.Context, userID, levelID int) error {
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return err
	}
	l, err := s.d.Levels.FromID(ctx, levelID)
	if err != nil {
		return orKind(err, LevelsNotFound)
	}
	if l.Deleted {
		return fail(LevelsNotFound)
	}
	allowed := u.Privileges.Has(privilege.LevelDeleteOther) ||
		(l.UserID == userID && u.Privileges.Has(privilege.LevelDeleteOwn))
	if !allowed {
		return fail(LevelsNoDeletePermission)
	}
	_, err = s.d.Levels.Update(ctx, levelID, dom.LevelUpdate{Deleted: ptr(true)})
	return err
}

// UpdateDescription replaces the description of one of the caller's levels.
func (s *LevelService) UpdateDescription(ctx context.Context, userID, levelID int, description string) (*dom.Level, error) {
	if len(description) > TextMaxBytes {
		return nil, fail(LevelsInvalidDescription)
	}
	u, err := s.d.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	l, err := s.d.Levels.FromID(ctx, levelID)
	if err != nil || l.Deleted {
		return nil, orKind(errOr(err, dom.ErrNotFound), LevelsNotFound)
	}
	if l.UserID != userID && !u.Privileges.Has(privilege.LevelChangeDescriptionOther) {
		return nil, fail(LevelsNoUpdatePermission)
	}
	return s.d.Levels.Update(ctx, levelID, dom.LevelUpdate{Description: &description})
}

func errOr(err, fallback error) error {
	if err != nil {
		return err
	}
	return fallback
}

// Download is a fetched level with its body.
type Download struct {
	Level    *dom.Level
	Data     string
	Schedule *dom.LevelSchedule
}

// Get fetches a level and counts the download. The ids DailyLevelID and
// WeeklyLevelID resolve through the current schedule slot.
func (s *LevelService) Get(ctx context.Context, levelID int) (*Download, error) {
	var sched *dom.LevelSchedule
	if t, ok := scheduleFor(levelID); ok {
		cur, err := s.d.Schedules.Current(ctx, t, s.d.Now())
		if err != nil {
			return nil, orKind(err, LevelScheduleUnset)
		}
		sched, levelID = cur, cur.LevelID
	}
	l, err := s.d.Levels.FromID(ctx, levelID)
	if err != nil {
		return nil, orKind(err, LevelsNotFound)
	}
	if l.Deleted {
		return nil, fail(LevelsNotFound)
	}
	data, err := (&LevelData{blobs: s.d.Blobs}).Get(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	if err := s.d.Levels.IncrementDownloads(ctx, l.ID); err != nil {
		return nil, err
	}
	l.Downloads++
	return &Download{Level: l, Data: data, Schedule: sched}, nil
}

func scheduleFor(levelID int) (dom.ScheduleType, bool) {
	switch levelID {
	case DailyLevelID:
		return dom.ScheduleDaily, true
	case WeeklyLevelID:
		return dom.ScheduleWeekly, true
	}
	return 0, false
}

// LevelPage is one page of search results with everything needed to render it.
type LevelPage struct {
	Levels []*dom.Level
	Users  []*dom.User
	Songs  []*dom.Song
	Total  int
}

// Search runs a level search for requesterID.
func (s *LevelService) Search(ctx context.Context, requesterID int, q dom.LevelSearchQuery) (*LevelPage, error) {
	q.RequesterID = requesterID
	q.Now = s.d.Now()

	var res dom.SearchResult
	switch q.Type {
	case dom.SearchDaily, dom.SearchWeekly:
		t := dom.ScheduleDaily
		if q.Type == dom.SearchWeekly {
			t = dom.ScheduleWeekly
		}
		slots, total, err := s.d.Schedules.Past(ctx, t, q.Now, q.Page, q.PageSize)
		if err != nil {
			return nil, err
		}
		for _, sl := range slots {
			res.IDs = append(res.IDs, sl.LevelID)
		}
		res.Total = int(total)
	default:
		if q.Type == dom.SearchFriends && requesterID != 0 {
			rels, err := s.d.Relationships.ListForUser(ctx, dom.RelationshipFriend, requesterID)
			if err != nil {
				return nil, err
			}
			for _, r := range rels {
				q.FriendIDs = append(q.FriendIDs, r.TargetUserID)
			}
		}
		if q.Type == dom.SearchUserLevels && q.AuthorID == 0 {
			q.AuthorID = requesterID
		}
		var err error
		if res, err = s.d.Levels.Search(ctx, q); err != nil {
			return nil, err
		}
	}
	return s.page(ctx, res)
}

// page loads the levels of res together with their authors and songs.
func (s *LevelService) page(ctx context.Context, res dom.SearchResult) (*LevelPage, error) {
	levels, err := s.d.Levels.FromIDs(ctx, res.IDs)
	if err != nil {
		return nil, err
	}
	var userIDs, songIDs []int
	seenUser, seenSong := map[int]bool{}, map[int]bool{}
	for _, l := range levels {
		if !seenUser[l.UserID] {
			seenUser[l.UserID] = true
			userIDs = append(userIDs, l.UserID)
		}
		if l.CustomSongID != nil && !seenSong[*l.CustomSongID] {
			seenSong[*l.CustomSongID] = true
			songIDs = append(songIDs, *l.CustomSongID)
		}
	}
	users, err := s.d.Users.FromIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	songs, err := s.d.Songs.FromIDs(ctx, songIDs)
	if err != nil {
		return nil, err
	}
	return &LevelPage{Levels: levels, Users: users, Songs: songs, Total: res.Total}, nil
}
