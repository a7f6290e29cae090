// Package search mirrors users and levels into a full-text index.
package search

import (
	"fmt"
	"strings"
	"time"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/privilege"
)

// Index is a combined user and level index.
type Index interface {
	dom.UserIndex
	dom.LevelIndex
}

// Config selects and configures the index driver.
type Config struct {
	Driver     string `json:",default=memory,options=memory|meili"`
	Host       string `json:",optional"`
	APIKey     string `json:",optional"`
	UsersIndex string `json:",default=users"`
	LevelIndex string `json:",default=levels"`
}

// New builds the configured driver.
func New(c Config) (Index, error) {
	switch strings.ToLower(c.Driver) {
	case "", "memory":
		return NewMemory(), nil
	case "meili", "meilisearch":
		return NewMeili(c)
	}
	return nil, fmt.Errorf("unsupported search driver: %s", c.Driver)
}

// UserDocument is the flat record stored for a user.
type UserDocument struct {
	ID            int    `json:"id"`
	Username      string `json:"username"`
	IsPublic      bool   `json:"is_public"`
	Privileges    uint64 `json:"privileges"`
	Stars         int    `json:"stars"`
	Demons        int    `json:"demons"`
	Moons         int    `json:"moons"`
	CreatorPoints int    `json:"creator_points"`
	Diamonds      int    `json:"diamonds"`
	Coins         int    `json:"coins"`
	UserCoins     int    `json:"user_coins"`
	RegisterTs    int64  `json:"register_ts"`
}

// NewUserDocument flattens u for the index.
func NewUserDocument(u *dom.User) UserDocument {
	return UserDocument{
		ID:            u.ID,
		Username:      u.Username,
		IsPublic:      u.Privileges.Has(privilege.UserProfilePublic),
		Privileges:    u.Privileges.Uint64(),
		Stars:         u.Stars,
		Demons:        u.Demons,
		Moons:         u.Moons,
		CreatorPoints: u.CreatorPoints,
		Diamonds:      u.Diamonds,
		Coins:         u.Coins,
		UserCoins:     u.UserCoins,
		RegisterTs:    u.RegisterTs.Unix(),
	}
}

// LevelDocument is the flat record stored for a level.
type LevelDocument struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	UserID          int    `json:"user_id"`
	CustomSongID    int    `json:"custom_song_id"`
	OfficialSongID  int    `json:"official_song_id"`
	Length          int    `json:"length"`
	TwoPlayer       bool   `json:"two_player"`
	Publicity       int    `json:"publicity"`
	OriginalID      int    `json:"original_id"`
	Downloads       int    `json:"downloads"`
	Likes           int    `json:"likes"`
	Stars           int    `json:"stars"`
	Difficulty      int    `json:"difficulty"`
	DemonDifficulty int    `json:"demon_difficulty"`
	Coins           int    `json:"coins"`
	CoinsVerified   bool   `json:"coins_verified"`
	RequestedStars  int    `json:"requested_stars"`
	FeatureOrder    int    `json:"feature_order"`
	SearchFlags     int    `json:"search_flags"`
	Epic            bool   `json:"epic"`
	Magic           bool   `json:"magic"`
	Awarded         bool   `json:"awarded"`
	UploadTs        int64  `json:"upload_ts"`
}

// NewLevelDocument flattens l for the index. Absent optional references are zero
// and a missing demon rating is -1.
func NewLevelDocument(l *dom.Level) LevelDocument {
	d := LevelDocument{
		ID:              l.ID,
		Name:            l.Name,
		Description:     l.Description,
		UserID:          l.UserID,
		Length:          int(l.Length),
		TwoPlayer:       l.TwoPlayer,
		Publicity:       int(l.Publicity),
		Downloads:       l.Downloads,
		Likes:           l.Likes,
		Stars:           l.Stars,
		Difficulty:      int(l.Difficulty),
		DemonDifficulty: -1,
		Coins:           l.Coins,
		CoinsVerified:   l.CoinsVerified,
		RequestedStars:  l.RequestedStars,
		FeatureOrder:    l.FeatureOrder,
		SearchFlags:     int(l.SearchFlags),
		Epic:            l.SearchFlags.EpicTier() > 0,
		Magic:           l.SearchFlags.Has(dom.FlagMagic),
		Awarded:         l.SearchFlags.Has(dom.FlagAwarded),
		UploadTs:        l.UploadTs.Unix(),
	}
	if l.CustomSongID != nil {
		d.CustomSongID = *l.CustomSongID
	}
	if l.OfficialSongID != nil {
		d.OfficialSongID = *l.OfficialSongID
	}
	if l.OriginalID != nil {
		d.OriginalID = *l.OriginalID
	}
	if l.DemonDifficulty != nil {
		d.DemonDifficulty = int(*l.DemonDifficulty)
	}
	return d
}

// trendingWindow bounds the upload age of trending levels.
const trendingWindow = 7 * 24 * time.Hour

func pageBounds(page, size int) (offset, limit int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	return page * size, size
}
