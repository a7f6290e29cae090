package ports

import (
	"context"
	"errors"
	"time"

	"github.com/gdps-go/gdps/internal/privilege"
)

// ErrNotFound is returned by every repository lookup that matches no row.
var ErrNotFound = errors.New("not found")

// UserUpdate carries the columns a partial user update may touch; nil fields are left alone.
type UserUpdate struct {
	Username        *string
	Email           *string
	Privileges      *privilege.Set
	MessagePrivacy  *PrivacySetting
	FriendPrivacy   *PrivacySetting
	CommentPrivacy  *PrivacySetting
	YoutubeName     *string
	TwitterName     *string
	TwitchName      *string
	Stars           *int
	Demons          *int
	Moons           *int
	PrimaryColour   *int
	SecondaryColour *int
	GlowColour      *int
	DisplayType     *int
	Icon            *int
	Ship            *int
	Ball            *int
	Ufo             *int
	Wave            *int
	Robot           *int
	Spider          *int
	SwingCopter     *int
	Jetpack         *int
	Glow            *bool
	Explosion       *int
	CreatorPoints   *int
	Diamonds        *int
	Coins           *int
	UserCoins       *int
	CommentColour   *string
}

// LevelUpdate carries the columns a partial level update may touch.
type LevelUpdate struct {
	Name            *string
	UserID          *int
	Description     *string
	CustomSongID    **int
	OfficialSongID  **int
	Version         *int
	Length          *LevelLength
	TwoPlayer       *bool
	Publicity       *LevelPublicity
	RenderStr       *string
	GameVersion     *int
	BinaryVersion   *int
	UpdateTs        *time.Time
	OriginalID      **int
	Stars           *int
	Difficulty      *LevelDifficulty
	DemonDifficulty **DemonDifficulty
	Coins           *int
	CoinsVerified   *bool
	RequestedStars  *int
	FeatureOrder    *int
	SearchFlags     *SearchFlag
	LowDetailMode   *bool
	ObjectCount     *int
	BuildingTime    *int
	CopyPassword    *int
	UpdateLocked    *bool
	Deleted         *bool
}

// UserSearchQuery filters the user index.
type UserSearchQuery struct {
	Query          string
	Page           int
	PageSize       int
	IncludePrivate bool
}

// LevelSearchQuery is the full level search parameter set the client can send.
type LevelSearchQuery struct {
	Query        string
	Type         SearchType
	Page         int
	PageSize     int
	Lengths      []LevelLength
	Difficulties []LevelDifficulty
	Demon        *DemonDifficulty
	Completed    []int
	Uncompleted  bool
	OnlyComplete bool
	AuthorID     int
	Followed     []int
	FriendIDs    []int
	ListIDs      []int
	SongID       int
	CustomSong   bool
	Featured     bool
	Original     bool
	TwoPlayer    bool
	Rated        bool
	Unrated      bool
	Epic         bool
	Coins        bool
	RequesterID  int
	Now          time.Time
}

// SearchResult is one page of matched identities and the overall match count.
type SearchResult struct {
	IDs   []int
	Total int
}

type UserRepository interface {
	FromID(ctx context.Context, id int) (*User, error)
	FromIDs(ctx context.Context, ids []int) ([]*User, error)
	FromUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, id int, upd UserUpdate) (*User, error)
	Search(ctx context.Context, q UserSearchQuery) (SearchResult, error)
	Count(ctx context.Context) (int64, error)
	Each(ctx context.Context, fn func(u *User) error) error
}

type CredentialRepository interface {
	FromUserID(ctx context.Context, userID int) (*UserCredential, error)
	Create(ctx context.Context, c *UserCredential) error
	Delete(ctx context.Context, id int) error
	CountForUser(ctx context.Context, userID int, version CredentialVersion) (int64, error)
}

type LevelRepository interface {
	FromID(ctx context.Context, id int) (*Level, error)
	FromIDs(ctx context.Context, ids []int) ([]*Level, error)
	Create(ctx context.Context, l *Level) error
	Update(ctx context.Context, id int, upd LevelUpdate) (*Level, error)
	IncrementDownloads(ctx context.Context, id int) error
	AdjustLikes(ctx context.Context, id, delta int) error
	Search(ctx context.Context, q LevelSearchQuery) (SearchResult, error)
	Count(ctx context.Context) (int64, error)
	Each(ctx context.Context, fn func(l *Level) error) error
}

type LevelScheduleRepository interface {
	Current(ctx context.Context, t ScheduleType, now time.Time) (*LevelSchedule, error)
	FromID(ctx context.Context, id int) (*LevelSchedule, error)
	Create(ctx context.Context, s *LevelSchedule) error
	Past(ctx context.Context, t ScheduleType, now time.Time, page, pageSize int) ([]*LevelSchedule, int64, error)
	Latest(ctx context.Context, t ScheduleType) (*LevelSchedule, error)
}

type LevelCommentRepository interface {
	FromID(ctx context.Context, id int) (*LevelComment, error)
	Create(ctx context.Context, c *LevelComment) error
	ListForLevel(ctx context.Context, levelID, page, pageSize int, byLikes bool) ([]*LevelComment, int64, error)
	ListForUser(ctx context.Context, userID, page, pageSize int, byLikes bool) ([]*LevelComment, int64, error)
	Delete(ctx context.Context, id int) error
	AdjustLikes(ctx context.Context, id, delta int) error
}

type UserCommentRepository interface {
	FromID(ctx context.Context, id int) (*UserComment, error)
	Create(ctx context.Context, c *UserComment) error
	ListForUser(ctx context.Context, userID, page, pageSize int) ([]*UserComment, int64, error)
	Delete(ctx context.Context, id int) error
	AdjustLikes(ctx context.Context, id, delta int) error
}

type MessageRepository interface {
	FromID(ctx context.Context, id int) (*Message, error)
	Create(ctx context.Context, m *Message) error
	ListReceived(ctx context.Context, userID, page, pageSize int) ([]*Message, int64, error)
	ListSent(ctx context.Context, userID, page, pageSize int) ([]*Message, int64, error)
	CountNew(ctx context.Context, userID int) (int64, error)
	MarkSeen(ctx context.Context, id int, at time.Time) error
	DeleteForSender(ctx context.Context, id int) error
	DeleteForRecipient(ctx context.Context, id int) error
}

type FriendRequestRepository interface {
	FromID(ctx context.Context, id int) (*FriendRequest, error)
	Between(ctx context.Context, senderID, recipientID int) (*FriendRequest, error)
	Create(ctx context.Context, r *FriendRequest) error
	ListReceived(ctx context.Context, userID, page, pageSize int) ([]*FriendRequest, int64, error)
	ListSent(ctx context.Context, userID, page, pageSize int) ([]*FriendRequest, int64, error)
	CountNew(ctx context.Context, userID int) (int64, error)
	MarkSeen(ctx context.Context, id int, at time.Time) error
	Delete(ctx context.Context, id int) error
}

type RelationshipRepository interface {
	Between(ctx context.Context, t RelationshipType, userID, targetID int) (*UserRelationship, error)
	Create(ctx context.Context, r *UserRelationship) error
	ListForUser(ctx context.Context, t RelationshipType, userID int) ([]*UserRelationship, error)
	CountNew(ctx context.Context, t RelationshipType, userID int) (int64, error)
	MarkAllSeen(ctx context.Context, t RelationshipType, userID int, at time.Time) error
	Delete(ctx context.Context, id int) error
	CountFor(ctx context.Context, t RelationshipType, userID int, asTarget bool) (int64, error)
}

type LikeRepository interface {
	Find(ctx context.Context, target LikeTarget, targetID, userID int) (*LikeInteraction, error)
	Create(ctx context.Context, l *LikeInteraction) error
	Sum(ctx context.Context, target LikeTarget, targetID int) (int, error)
}

type DailyChestRepository interface {
	Latest(ctx context.Context, userID int, t ChestType) (*DailyChest, error)
	Count(ctx context.Context, userID int, t ChestType) (int64, error)
	TotalMana(ctx context.Context, userID int) (int, error)
	Create(ctx context.Context, c *DailyChest) error
}

type SongRepository interface {
	FromID(ctx context.Context, id int) (*Song, error)
	FromIDs(ctx context.Context, ids []int) ([]*Song, error)
	Create(ctx context.Context, s *Song) error
}

type ControlEventRepository interface {
	Record(ctx context.Context, e *ControlEvent) error
}

// Leaderboard is the sorted-set backed star and creator ranking.
type Leaderboard interface {
	SetStars(ctx context.Context, userID, stars int) error
	SetCreatorPoints(ctx context.Context, userID, points int) error
	RemoveStars(ctx context.Context, userID int) error
	RemoveCreatorPoints(ctx context.Context, userID int) error
	StarRank(ctx context.Context, userID int) (int, error)
	CreatorRank(ctx context.Context, userID int) (int, error)
	TopStars(ctx context.Context, offset, count int) ([]int, error)
	TopCreators(ctx context.Context, offset, count int) ([]int, error)
}

// PasswordCache maps a bcrypt hash to the GJP2 digest that last matched it.
type PasswordCache interface {
	Get(ctx context.Context, hash string) (string, bool, error)
	Set(ctx context.Context, hash, gjp2 string) error
}

// UserIndex is the full-text index of users.
type UserIndex interface {
	UpsertUsers(ctx context.Context, users ...*User) error
	SearchUsers(ctx context.Context, q UserSearchQuery) (SearchResult, error)
}

// LevelIndex is the full-text index of levels.
type LevelIndex interface {
	UpsertLevels(ctx context.Context, levels ...*Level) error
	DeleteLevel(ctx context.Context, id int) error
	SearchLevels(ctx context.Context, q LevelSearchQuery) (SearchResult, error)
}

// BlobStore is the subset of object storage the blob repositories need.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	PutBytes(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// UpstreamGame is the client for the official servers.
type UpstreamGame interface {
	SongInfo(ctx context.Context, id int) (*Song, error)
}
