package codec

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

// ProfileCounters are the unread counts shown on the requester's own profile.
type ProfileCounters struct {
	NewMessages       int
	NewFriendRequests int
	NewFriends        int
}

// ProfileView is everything a profile record needs besides the user.
type ProfileView struct {
	Rank         int
	FriendStatus ports.FriendStatus
	Request      *ports.FriendRequest
	Counters     *ProfileCounters
	Now          time.Time
}

// ModLevel is the badge the client draws next to a username.
func ModLevel(p privilege.Set) int {
	switch {
	case p.Has(privilege.UserDisplayElderBadge):
		return 2
	case p.Has(privilege.UserDisplayModBadge):
		return 1
	}
	return 0
}

func displayIcon(u *ports.User) int {
	switch u.DisplayType {
	case 1:
		return u.Ship
	case 2:
		return u.Ball
	case 3:
		return u.Ufo
	case 4:
		return u.Wave
	case 5:
		return u.Robot
	case 6:
		return u.Spider
	case 7:
		return u.SwingCopter
	case 8:
		return u.Jetpack
	}
	return u.Icon
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Profile renders the getGJUserInfo record.
func Profile(u *ports.User, v ProfileView) Record {
	r := Record{}
	r.Set(1, u.Username).
		SetInt(2, u.ID).
		SetInt(3, u.Stars).
		SetInt(4, u.Demons).
		SetInt(6, v.Rank).
		SetInt(7, u.ID).
		SetInt(8, u.CreatorPoints).
		SetInt(9, displayIcon(u)).
		SetInt(10, u.PrimaryColour).
		SetInt(11, u.SecondaryColour).
		SetInt(13, u.Coins).
		SetInt(14, u.DisplayType).
		SetInt(15, 0).
		SetInt(16, u.ID).
		SetInt(17, u.UserCoins).
		SetInt(18, int(u.MessagePrivacy)).
		SetInt(19, int(u.FriendPrivacy)).
		Set(20, optional(u.YoutubeName)).
		SetInt(21, u.Icon).
		SetInt(22, u.Ship).
		SetInt(23, u.Ball).
		SetInt(24, u.Ufo).
		SetInt(25, u.Wave).
		SetInt(26, u.Robot).
		SetBool(28, u.Glow).
		SetInt(29, 1).
		SetInt(30, v.Rank).
		SetInt(31, int(v.FriendStatus)).
		SetInt(43, u.Spider).
		Set(44, optional(u.TwitterName)).
		Set(45, optional(u.TwitchName)).
		SetInt(46, u.Diamonds).
		SetInt(48, u.Explosion).
		SetInt(49, ModLevel(u.Privileges)).
		SetInt(50, int(u.CommentPrivacy)).
		SetInt(51, u.GlowColour).
		SetInt(52, u.Moons).
		SetInt(53, u.SwingCopter).
		SetInt(54, u.Jetpack)

	if v.Request != nil {
		r.SetInt(32, v.Request.ID).
			Set(35, EncodeBase64String(v.Request.Message)).
			Set(37, Age(v.Request.PostTs, v.Now))
	}
	if v.Counters != nil {
		r.SetInt(38, v.Counters.NewMessages).
			SetInt(39, v.Counters.NewFriendRequests).
			SetInt(40, v.Counters.NewFriends)
	}
	return r
}

// UserSearchEntry renders one result of getGJUsers.
func UserSearchEntry(u *ports.User, rank int) Record {
	return Record{}.
		Set(1, u.Username).
		SetInt(2, u.ID).
		SetInt(3, u.Stars).
		SetInt(4, u.Demons).
		SetInt(8, u.CreatorPoints).
		SetInt(9, displayIcon(u)).
		SetInt(10, u.PrimaryColour).
		SetInt(11, u.SecondaryColour).
		SetInt(13, u.Coins).
		SetInt(14, u.DisplayType).
		SetInt(15, glowValue(u)).
		SetInt(16, u.ID).
		SetInt(17, u.UserCoins).
		SetInt(52, u.Moons).
		SetInt(6, rank)
}

// ScoreEntry renders one leaderboard row.
func ScoreEntry(u *ports.User, rank int) Record {
	return Record{}.
		Set(1, u.Username).
		SetInt(2, u.ID).
		SetInt(3, u.Stars).
		SetInt(4, u.Demons).
		SetInt(6, rank).
		SetInt(7, u.ID).
		SetInt(8, u.CreatorPoints).
		SetInt(9, displayIcon(u)).
		SetInt(10, u.PrimaryColour).
		SetInt(11, u.SecondaryColour).
		SetInt(13, u.Coins).
		SetInt(14, u.DisplayType).
		SetInt(15, glowValue(u)).
		SetInt(16, u.ID).
		SetInt(17, u.UserCoins).
		SetInt(46, u.Diamonds).
		SetInt(52, u.Moons)
}

// RelationshipEntry renders one friend or blocked list row.
func RelationshipEntry(u *ports.User, unseen bool) Record {
	return Record{}.
		Set(1, u.Username).
		SetInt(2, u.ID).
		SetInt(9, displayIcon(u)).
		SetInt(10, u.PrimaryColour).
		SetInt(11, u.SecondaryColour).
		SetInt(14, u.DisplayType).
		SetInt(15, glowValue(u)).
		SetInt(16, u.ID).
		SetInt(18, int(u.MessagePrivacy)).
		SetBool(41, unseen)
}

// FriendRequestEntry renders one row of the friend request list.
func FriendRequestEntry(fr *ports.FriendRequest, counterpart *ports.User, now time.Time) Record {
	return Record{}.
		Set(1, counterpart.Username).
		SetInt(2, counterpart.ID).
		SetInt(9, displayIcon(counterpart)).
		SetInt(10, counterpart.PrimaryColour).
		SetInt(11, counterpart.SecondaryColour).
		SetInt(14, counterpart.DisplayType).
		SetInt(15, glowValue(counterpart)).
		SetInt(16, counterpart.ID).
		SetInt(32, fr.ID).
		Set(35, EncodeBase64String(fr.Message)).
		Set(37, Age(fr.PostTs, now)).
		SetBool(41, fr.SeenTs == nil)
}

func glowValue(u *ports.User) int {
	if u.Glow {
		return 2
	}
	return 0
}

// LevelView carries the values a level record reads outside the level row.
type LevelView struct {
	Now        time.Time
	Data       string
	ScheduleID int
}

func levelPassword(l *ports.Level) string {
	if l.CopyPassword == 0 {
		return "0"
	}
	return EncodeXOR(strconv.Itoa(l.CopyPassword), KeyLevelPassword)
}

// LevelPasswordPlain is the copy password as fed into the metadata hash.
func LevelPasswordPlain(l *ports.Level) string {
	return strconv.Itoa(l.CopyPassword)
}

// Level renders the minimal level record used in search results.
func Level(l *ports.Level) Record {
	r := Record{}
	r.SetInt(1, l.ID).
		Set(2, l.Name).
		Set(3, EncodeBase64String(l.Description)).
		SetInt(5, l.Version).
		SetInt(6, l.UserID).
		SetInt(9, l.Difficulty.Numerator()).
		SetInt(10, l.Downloads).
		SetInt(13, l.GameVersion).
		SetInt(14, l.Likes).
		SetInt(15, int(l.Length)).
		SetInt(18, l.Stars).
		SetInt(19, l.FeatureOrder).
		SetInt(37, l.Coins).
		SetBool(38, l.CoinsVerified).
		SetInt(39, l.RequestedStars).
		SetInt(42, l.SearchFlags.EpicTier()).
		SetInt(45, l.ObjectCount).
		SetInt(46, l.BuildingTime).
		SetInt(47, 0)

	if l.Difficulty != ports.DifficultyNA {
		r.SetInt(8, 10)
	} else {
		r.SetInt(8, 0)
	}
	if l.IsDemon() {
		r.SetInt(17, 1)
	} else {
		r.Set(17, "")
	}
	if l.Difficulty == ports.DifficultyAuto {
		r.SetInt(25, 1)
	} else {
		r.Set(25, "")
	}
	if l.DemonDifficulty != nil {
		r.SetInt(43, int(*l.DemonDifficulty))
	} else {
		r.SetInt(43, 0)
	}
	if l.OriginalID != nil {
		r.SetInt(30, *l.OriginalID)
	} else {
		r.SetInt(30, 0)
	}
	r.SetBool(31, l.TwoPlayer)

	if l.CustomSongID != nil {
		r.SetInt(12, 0).SetInt(35, *l.CustomSongID)
	} else if l.OfficialSongID != nil {
		r.SetInt(12, *l.OfficialSongID).SetInt(35, 0)
	} else {
		r.SetInt(12, 0).SetInt(35, 0)
	}
	return r
}

// FullLevel renders the download record: the minimal shape plus the body,
// copy password, timestamps and render string.
func FullLevel(l *ports.Level, v LevelView) Record {
	r := Level(l)
	r.Set(4, v.Data).
		Set(27, levelPassword(l)).
		Set(28, Age(l.UploadTs, v.Now)).
		Set(29, Age(l.UpdateTs, v.Now)).
		Set(36, l.RenderStr)
	if v.ScheduleID > 0 {
		r.SetInt(41, v.ScheduleID)
	}
	return r
}

// Song renders a song record with the "~|~" separator semantics.
func Song(s *ports.Song) Record {
	r := Record{}
	r.SetInt(1, s.ID).
		Set(2, s.Name).
		SetInt(3, s.AuthorID).
		Set(4, s.Author).
		Set(5, fmt.Sprintf("%.2f", s.Size)).
		Set(6, "").
		Set(7, optional(s.AuthorYoutube)).
		Set(8, "1").
		Set(9, "").
		Set(10, url.QueryEscape(s.DownloadURL))
	return r
}

// LevelComment renders the comment half of a level comment row.
func LevelComment(c *ports.LevelComment, author *ports.User, now time.Time) Record {
	r := Record{}
	r.Set(2, EncodeBase64String(c.Content)).
		SetInt(3, c.UserID).
		SetInt(4, c.Likes).
		SetInt(5, 0).
		SetInt(6, c.ID).
		SetInt(7, 0).
		Set(9, Age(c.PostTs, now)).
		SetInt(10, c.Percent)
	if author != nil {
		r.SetInt(11, ModLevel(author.Privileges)).
			Set(12, author.CommentColour)
	}
	return r
}

// HistoryComment renders a level comment as seen in a user's comment history.
func HistoryComment(c *ports.LevelComment, author *ports.User, now time.Time) Record {
	return LevelComment(c, author, now).SetInt(1, c.LevelID)
}

// CommentAuthor renders the user half of a level comment row.
func CommentAuthor(u *ports.User) Record {
	return Record{}.
		Set(1, u.Username).
		SetInt(9, displayIcon(u)).
		SetInt(10, u.PrimaryColour).
		SetInt(11, u.SecondaryColour).
		SetInt(14, u.DisplayType).
		SetInt(15, glowValue(u)).
		SetInt(16, u.ID)
}

// CommentRow joins a comment and its author into one list entry.
func CommentRow(comment, author Record) string {
	if author == nil {
		return Encode(comment, CommentSep)
	}
	return Encode(comment, CommentSep) + ":" + Encode(author, CommentSep)
}

// UserComment renders a profile comment.
func UserComment(c *ports.UserComment, now time.Time) Record {
	return Record{}.
		Set(2, EncodeBase64String(c.Content)).
		SetInt(4, c.Likes).
		SetInt(6, c.ID).
		Set(9, Age(c.PostTs, now))
}

// Message renders a message list entry. When full is set the body is
// included, masked with the message key.
func Message(m *ports.Message, counterpart *ports.User, sent, full bool, now time.Time) Record {
	r := Record{}
	r.SetInt(1, m.ID).
		SetInt(2, counterpart.ID).
		SetInt(3, counterpart.ID).
		Set(4, EncodeBase64String(m.Subject)).
		Set(6, counterpart.Username).
		Set(7, Age(m.PostTs, now)).
		SetBool(8, m.SeenTs != nil).
		SetBool(9, sent)
	if full {
		r.Set(5, EncodeXOR(m.Content, KeyMessage))
	}
	return r
}

// LevelUser is the creator triple appended to level search responses.
func LevelUser(u *ports.User) string {
	return strconv.Itoa(u.ID) + ":" + u.Username + ":" + strconv.Itoa(u.ID)
}

// ChestRewards renders the "mana,diamonds,item,item" reward string. Demon
// keys are listed before shards.
func ChestRewards(c *ports.DailyChest) string {
	items := make([]int, 0, 2)
	for n := c.DemonKeys; n > 0 && len(items) < 2; n-- {
		items = append(items, ports.DemonKeyItem)
	}
	for _, s := range ports.ShardTypes {
		for n := c.ShardCount(s); n > 0 && len(items) < 2; n-- {
			items = append(items, int(s))
		}
	}
	for len(items) < 2 {
		items = append(items, 0)
	}
	return fmt.Sprintf("%d,%d,%d,%d", c.Mana, c.Diamonds, items[0], items[1])
}

// ChestState is the plaintext of a getGJRewards response.
type ChestState struct {
	UserID         int
	Check          string
	UDID           string
	SmallRemaining time.Duration
	SmallRewards   string
	SmallCount     int
	LargeRemaining time.Duration
	LargeRewards   string
	LargeCount     int
	RewardType     ports.ChestType
}

// ChestPlain renders the colon-joined chest response before masking.
func ChestPlain(s ChestState) string {
	small, large := s.SmallRewards, s.LargeRewards
	if small == "" {
		small = "0,0,0,0"
	}
	if large == "" {
		large = "0,0,0,0"
	}
	return strings.Join([]string{
		"1",
		strconv.Itoa(s.UserID),
		s.Check,
		s.UDID,
		strconv.Itoa(s.UserID),
		wholeSeconds(s.SmallRemaining),
		small,
		strconv.Itoa(s.SmallCount),
		wholeSeconds(s.LargeRemaining),
		large,
		strconv.Itoa(s.LargeCount),
		strconv.Itoa(int(s.RewardType)),
	}, ":")
}

// wholeSeconds rounds up so a chest shown as ready is claimable.
func wholeSeconds(d time.Duration) string {
	return strconv.Itoa(int((d + time.Second - 1) / time.Second))
}
