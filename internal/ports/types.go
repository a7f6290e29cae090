package ports

import (
	"time"

	"gorm.io/datatypes"

	"github.com/gdps-go/gdps/internal/privilege"
)

// Domain records. They double as the GORM models of the relational store;
// enum-typed fields are persisted as integers.

type User struct {
	ID              int    `gorm:"primaryKey;autoIncrement"`
	Username        string `gorm:"uniqueIndex;size:32;not null"`
	Email           string `gorm:"uniqueIndex;size:256;not null"`
	Privileges      privilege.Set
	MessagePrivacy  PrivacySetting `gorm:"not null;default:0"`
	FriendPrivacy   PrivacySetting `gorm:"not null;default:0"`
	CommentPrivacy  PrivacySetting `gorm:"not null;default:0"`
	YoutubeName     *string        `gorm:"size:64"`
	TwitterName     *string        `gorm:"size:64"`
	TwitchName      *string        `gorm:"size:64"`
	Stars           int            `gorm:"not null;default:0"`
	Demons          int            `gorm:"not null;default:0"`
	Moons           int            `gorm:"not null;default:0"`
	PrimaryColour   int            `gorm:"not null;default:0"`
	SecondaryColour int            `gorm:"not null;default:3"`
	GlowColour      int            `gorm:"not null;default:0"`
	DisplayType     int            `gorm:"not null;default:0"`
	Icon            int            `gorm:"not null;default:1"`
	Ship            int            `gorm:"not null;default:1"`
	Ball            int            `gorm:"not null;default:1"`
	Ufo             int            `gorm:"not null;default:1"`
	Wave            int            `gorm:"not null;default:1"`
	Robot           int            `gorm:"not null;default:1"`
	Spider          int            `gorm:"not null;default:1"`
	SwingCopter     int            `gorm:"not null;default:1"`
	Jetpack         int            `gorm:"not null;default:1"`
	Glow            bool           `gorm:"not null;default:false"`
	Explosion       int            `gorm:"not null;default:1"`
	CreatorPoints   int            `gorm:"not null;default:0"`
	Diamonds        int            `gorm:"not null;default:0"`
	Coins           int            `gorm:"not null;default:0"`
	UserCoins       int            `gorm:"not null;default:0"`
	CommentColour   string         `gorm:"size:16;not null;default:'0,0,0'"`
	RegisterTs      time.Time      `gorm:"not null"`
}

type UserCredential struct {
	ID      int               `gorm:"primaryKey;autoIncrement"`
	UserID  int               `gorm:"index;not null"`
	Version CredentialVersion `gorm:"not null"`
	Value   string            `gorm:"size:255;not null"`
}

type Level struct {
	ID              int    `gorm:"primaryKey;autoIncrement"`
	Name            string `gorm:"size:32;index;not null"`
	UserID          int    `gorm:"index;not null"`
	Description     string `gorm:"size:512;not null;default:''"`
	CustomSongID    *int   `gorm:"index"`
	OfficialSongID  *int
	Version         int            `gorm:"not null;default:1"`
	Length          LevelLength    `gorm:"not null;default:0"`
	TwoPlayer       bool           `gorm:"not null;default:false"`
	Publicity       LevelPublicity `gorm:"not null;default:0"`
	RenderStr       string         `gorm:"type:text"`
	GameVersion     int            `gorm:"not null;default:22"`
	BinaryVersion   int            `gorm:"not null;default:0"`
	UploadTs        time.Time      `gorm:"not null"`
	UpdateTs        time.Time      `gorm:"not null"`
	OriginalID      *int
	Downloads       int             `gorm:"not null;default:0"`
	Likes           int             `gorm:"not null;default:0"`
	Stars           int             `gorm:"not null;default:0"`
	Difficulty      LevelDifficulty `gorm:"not null;default:0"`
	DemonDifficulty *DemonDifficulty
	Coins           int        `gorm:"not null;default:0"`
	CoinsVerified   bool       `gorm:"not null;default:false"`
	RequestedStars  int        `gorm:"not null;default:0"`
	FeatureOrder    int        `gorm:"not null;default:0"`
	SearchFlags     SearchFlag `gorm:"not null;default:0"`
	LowDetailMode   bool       `gorm:"not null;default:false"`
	ObjectCount     int        `gorm:"not null;default:0"`
	BuildingTime    int        `gorm:"not null;default:0"`
	CopyPassword    int        `gorm:"not null;default:0"`
	UpdateLocked    bool       `gorm:"not null;default:false"`
	Deleted         bool       `gorm:"index;not null;default:false"`
}

// IsDemon reports whether the level carries a demon rating.
func (l *Level) IsDemon() bool { return l.Difficulty == DifficultyDemon }

// SongID returns whichever song reference is set and whether it is custom.
func (l *Level) SongID() (int, bool) {
	if l.CustomSongID != nil {
		return *l.CustomSongID, true
	}
	if l.OfficialSongID != nil {
		return *l.OfficialSongID, false
	}
	return 0, false
}

type LevelSchedule struct {
	ID          int          `gorm:"primaryKey;autoIncrement"`
	Type        ScheduleType `gorm:"index;not null"`
	LevelID     int          `gorm:"not null"`
	StartTs     time.Time    `gorm:"index;not null"`
	EndTs       time.Time    `gorm:"index;not null"`
	SchedulerID *int
}

// WireID is the schedule identity as the client sees it.
func (s *LevelSchedule) WireID() int {
	if s.Type == ScheduleWeekly {
		return s.ID + 100000
	}
	return s.ID
}

type LevelComment struct {
	ID      int       `gorm:"primaryKey;autoIncrement"`
	UserID  int       `gorm:"index;not null"`
	LevelID int       `gorm:"index;not null"`
	Content string    `gorm:"size:256;not null"`
	Percent int       `gorm:"not null;default:0"`
	Likes   int       `gorm:"not null;default:0"`
	PostTs  time.Time `gorm:"not null"`
	Deleted bool      `gorm:"index;not null;default:false"`
}

type UserComment struct {
	ID      int       `gorm:"primaryKey;autoIncrement"`
	UserID  int       `gorm:"index;not null"`
	Content string    `gorm:"size:256;not null"`
	Likes   int       `gorm:"not null;default:0"`
	PostTs  time.Time `gorm:"not null"`
	Deleted bool      `gorm:"index;not null;default:false"`
}

type Message struct {
	ID               int       `gorm:"primaryKey;autoIncrement"`
	SenderUserID     int       `gorm:"index;not null"`
	RecipientUserID  int       `gorm:"index;not null"`
	Subject          string    `gorm:"size:256;not null"`
	Content          string    `gorm:"type:text;not null"`
	PostTs           time.Time `gorm:"not null"`
	SeenTs           *time.Time
	SenderDeleted    bool `gorm:"not null;default:false"`
	RecipientDeleted bool `gorm:"not null;default:false"`
}

type FriendRequest struct {
	ID              int       `gorm:"primaryKey;autoIncrement"`
	SenderUserID    int       `gorm:"index;not null"`
	RecipientUserID int       `gorm:"index;not null"`
	Message         string    `gorm:"size:256;not null;default:''"`
	PostTs          time.Time `gorm:"not null"`
	SeenTs          *time.Time
	Deleted         bool `gorm:"index;not null;default:false"`
}

type UserRelationship struct {
	ID           int              `gorm:"primaryKey;autoIncrement"`
	Type         RelationshipType `gorm:"index;not null"`
	UserID       int              `gorm:"index;not null"`
	TargetUserID int              `gorm:"index;not null"`
	PostTs       time.Time        `gorm:"not null"`
	SeenTs       *time.Time
	Deleted      bool `gorm:"index;not null;default:false"`
}

type LikeInteraction struct {
	ID         int        `gorm:"primaryKey;autoIncrement"`
	TargetType LikeTarget `gorm:"uniqueIndex:idx_like_target;not null"`
	TargetID   int        `gorm:"uniqueIndex:idx_like_target;not null"`
	UserID     int        `gorm:"uniqueIndex:idx_like_target;not null"`
	Value      int        `gorm:"not null"`
}

type DailyChest struct {
	ID           int       `gorm:"primaryKey;autoIncrement"`
	UserID       int       `gorm:"index;not null"`
	Type         ChestType `gorm:"index;not null"`
	Mana         int       `gorm:"not null;default:0"`
	Diamonds     int       `gorm:"not null;default:0"`
	FireShards   int       `gorm:"not null;default:0"`
	IceShards    int       `gorm:"not null;default:0"`
	PoisonShards int       `gorm:"not null;default:0"`
	ShadowShards int       `gorm:"not null;default:0"`
	LavaShards   int       `gorm:"not null;default:0"`
	DemonKeys    int       `gorm:"not null;default:0"`
	ClaimedTs    time.Time `gorm:"index;not null"`
}

// ShardCount returns the amount of the given shard in the claim.
func (c *DailyChest) ShardCount(s ShardType) int {
	switch s {
	case ShardFire:
		return c.FireShards
	case ShardIce:
		return c.IceShards
	case ShardPoison:
		return c.PoisonShards
	case ShardShadow:
		return c.ShadowShards
	case ShardLava:
		return c.LavaShards
	}
	return 0
}

// AddShard adds n of the given shard to the claim.
func (c *DailyChest) AddShard(s ShardType, n int) {
	switch s {
	case ShardFire:
		c.FireShards += n
	case ShardIce:
		c.IceShards += n
	case ShardPoison:
		c.PoisonShards += n
	case ShardShadow:
		c.ShadowShards += n
	case ShardLava:
		c.LavaShards += n
	}
}

type Song struct {
	ID            int        `gorm:"primaryKey;autoIncrement:false"`
	Name          string     `gorm:"size:128;not null"`
	AuthorID      int        `gorm:"not null;default:0"`
	Author        string     `gorm:"size:128;not null"`
	AuthorYoutube *string    `gorm:"size:128"`
	Size          float64    `gorm:"not null;default:0"`
	DownloadURL   string     `gorm:"size:512;not null"`
	Source        SongSource `gorm:"not null;default:0"`
	Blocked       bool       `gorm:"not null;default:false"`
}

// ControlEvent records a processed pub/sub command.
type ControlEvent struct {
	ID         int    `gorm:"primaryKey;autoIncrement"`
	Channel    string `gorm:"size:64;index;not null"`
	Payload    datatypes.JSON
	Status     string    `gorm:"size:16;not null"`
	Error      string    `gorm:"size:512"`
	ReceivedTs time.Time `gorm:"not null"`
}
