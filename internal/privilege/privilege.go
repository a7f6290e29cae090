// Package privilege implements the 128-bit user privilege set. The set is
// persisted as 16 raw little-endian bytes so that adding bits never changes
// the storage or wire format of existing rows.
package privilege

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"
)

// Privilege is a bit index into a Set.
type Privilege uint8

const (
	UserAuthenticate Privilege = iota
	UserProfilePublic
	UserStarLeaderboardPublic
	UserCreatorLeaderboardPublic
	UserDisplayElderBadge
	UserDisplayModBadge
	UserRequestElder
	UserRequestModerator
	UserCreateUserComments
	UserModifyPrivileges
	UserChangeCredentialsOwn
	UserChangeCredentialsOther
	LevelUpload
	LevelUpdate
	LevelDeleteOwn
	LevelDeleteOther
	LevelRateStars
	LevelEnqueueDaily
	LevelEnqueueWeekly
	LevelModifyVisibility
	LevelRenameOther
	LevelMarkMagic
	LevelMarkAwarded
	LevelChangeDescriptionOther
	LevelMoveUser
	CommentsPost
	CommentsDeleteOwn
	CommentsDeleteOther
	CommentsBypassSpamFilter
	CommentsLike
	CommandsTrigger
	MessagesSend
	MessagesDeleteOwn
	FriendRequestsSend
	FriendRequestsAccept
	FriendRequestsDeleteOwn
	MapPackCreate
	GauntletCreate
	ServerResyncSearch
	ServerStop
	ServerResyncLeaderboards
	UserViewPrivateProfile

	maxPrivilege = 128
)

var names = map[Privilege]string{
	UserAuthenticate:             "USER_AUTHENTICATE",
	UserProfilePublic:            "USER_PROFILE_PUBLIC",
	UserStarLeaderboardPublic:    "USER_STAR_LEADERBOARD_PUBLIC",
	UserCreatorLeaderboardPublic: "USER_CREATOR_LEADERBOARD_PUBLIC",
	UserDisplayElderBadge:        "USER_DISPLAY_ELDER_BADGE",
	UserDisplayModBadge:          "USER_DISPLAY_MOD_BADGE",
	UserRequestElder:             "USER_REQUEST_ELDER",
	UserRequestModerator:         "USER_REQUEST_MODERATOR",
	UserCreateUserComments:       "USER_CREATE_USER_COMMENTS",
	UserModifyPrivileges:         "USER_MODIFY_PRIVILEGES",
	UserChangeCredentialsOwn:     "USER_CHANGE_CREDENTIALS_OWN",
	UserChangeCredentialsOther:   "USER_CHANGE_CREDENTIALS_OTHER",
	LevelUpload:                  "LEVEL_UPLOAD",
	LevelUpdate:                  "LEVEL_UPDATE",
	LevelDeleteOwn:               "LEVEL_DELETE_OWN",
	LevelDeleteOther:             "LEVEL_DELETE_OTHER",
	LevelRateStars:               "LEVEL_RATE_STARS",
	LevelEnqueueDaily:            "LEVEL_ENQUEUE_DAILY",
	LevelEnqueueWeekly:           "LEVEL_ENQUEUE_WEEKLY",
	LevelModifyVisibility:        "LEVEL_MODIFY_VISIBILITY",
	LevelRenameOther:             "LEVEL_RENAME_OTHER",
	LevelMarkMagic:               "LEVEL_MARK_MAGIC",
	LevelMarkAwarded:             "LEVEL_MARK_AWARDED",
	LevelChangeDescriptionOther:  "LEVEL_CHANGE_DESCRIPTION_OTHER",
	LevelMoveUser:                "LEVEL_MOVE_USER",
	CommentsPost:                 "COMMENTS_POST",
	CommentsDeleteOwn:            "COMMENTS_DELETE_OWN",
	CommentsDeleteOther:          "COMMENTS_DELETE_OTHER",
	CommentsBypassSpamFilter:     "COMMENTS_BYPASS_SPAM_FILTER",
	CommentsLike:                 "COMMENTS_LIKE",
	CommandsTrigger:              "COMMANDS_TRIGGER",
	MessagesSend:                 "MESSAGES_SEND",
	MessagesDeleteOwn:            "MESSAGES_DELETE_OWN",
	FriendRequestsSend:           "FRIEND_REQUESTS_SEND",
	FriendRequestsAccept:         "FRIEND_REQUESTS_ACCEPT",
	FriendRequestsDeleteOwn:      "FRIEND_REQUESTS_DELETE_OWN",
	MapPackCreate:                "MAP_PACK_CREATE",
	GauntletCreate:               "GAUNTLET_CREATE",
	ServerResyncSearch:           "SERVER_RESYNC_SEARCH",
	ServerStop:                   "SERVER_STOP",
	ServerResyncLeaderboards:     "SERVER_RESYNC_LEADERBOARDS",
	UserViewPrivateProfile:       "USER_VIEW_PRIVATE_PROFILE",
}

func (p Privilege) String() string {
	if n, ok := names[p]; ok {
		return n
	}
	return fmt.Sprintf("PRIVILEGE_%d", uint8(p))
}

// Parse looks a privilege up by its String name, case-insensitively.
func Parse(name string) (Privilege, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for p, n := range names {
		if n == name {
			return p, true
		}
	}
	return 0, false
}

// Set is an unsigned 128-bit privilege bitset. The zero value grants nothing.
type Set struct {
	lo, hi uint64
}

// Of builds a set holding every given privilege.
func Of(ps ...Privilege) Set {
	var s Set
	for _, p := range ps {
		s = s.With(p)
	}
	return s
}

// Restricted is the set masked off by a restriction and restored by lifting it.
var Restricted = Of(
	UserProfilePublic,
	FriendRequestsSend,
	MessagesSend,
	UserStarLeaderboardPublic,
	UserCreatorLeaderboardPublic,
)

// Default is granted to newly registered users.
var Default = Of(
	UserAuthenticate,
	UserProfilePublic,
	UserStarLeaderboardPublic,
	UserCreatorLeaderboardPublic,
	UserCreateUserComments,
	UserChangeCredentialsOwn,
	LevelUpload,
	LevelUpdate,
	LevelDeleteOwn,
	CommentsPost,
	CommentsDeleteOwn,
	CommentsLike,
	MessagesSend,
	MessagesDeleteOwn,
	FriendRequestsSend,
	FriendRequestsAccept,
	FriendRequestsDeleteOwn,
)

func (s Set) Has(p Privilege) bool {
	if p < 64 {
		return s.lo&(1<<p) != 0
	}
	return s.hi&(1<<(p-64)) != 0
}

// HasAll reports whether every bit of other is present in s.
func (s Set) HasAll(other Set) bool {
	return s.lo&other.lo == other.lo && s.hi&other.hi == other.hi
}

func (s Set) With(p Privilege) Set {
	if p < 64 {
		s.lo |= 1 << p
	} else {
		s.hi |= 1 << (p - 64)
	}
	return s
}

func (s Set) Without(p Privilege) Set {
	if p < 64 {
		s.lo &^= 1 << p
	} else {
		s.hi &^= 1 << (p - 64)
	}
	return s
}

func (s Set) Union(other Set) Set { return Set{lo: s.lo | other.lo, hi: s.hi | other.hi} }

func (s Set) Mask(other Set) Set { return Set{lo: s.lo &^ other.lo, hi: s.hi &^ other.hi} }

func (s Set) IsZero() bool { return s.lo == 0 && s.hi == 0 }

// Bytes returns the 16-byte little-endian encoding.
func (s Set) Bytes() []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(b[:8], s.lo)
	binary.LittleEndian.PutUint64(b[8:], s.hi)
	return b
}

// FromBytes decodes up to 16 little-endian bytes; shorter input is zero-extended.
func FromBytes(b []byte) (Set, error) {
	if len(b) > 16 {
		return Set{}, fmt.Errorf("privilege: %d bytes exceeds 16", len(b))
	}
	var buf [16]byte
	copy(buf[:], b)
	return Set{
		lo: binary.LittleEndian.Uint64(buf[:8]),
		hi: binary.LittleEndian.Uint64(buf[8:]),
	}, nil
}

// Uint64 returns the low word. Every privilege currently defined lives there.
func (s Set) Uint64() uint64 { return s.lo }

// FromUint64 builds a set from a low word.
func FromUint64(v uint64) Set { return Set{lo: v} }

// Big returns the full 128-bit value.
func (s Set) Big() *big.Int {
	v := new(big.Int).SetUint64(s.hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(s.lo))
}

func (s Set) String() string {
	var parts []string
	for i := 0; i < maxPrivilege; i++ {
		if p := Privilege(i); s.Has(p) {
			parts = append(parts, p.String())
		}
	}
	return strings.Join(parts, "|")
}

// GormDataType stores the set as a binary column.
func (Set) GormDataType() string { return "bytes" }

// Value implements driver.Valuer.
func (s Set) Value() (driver.Value, error) { return s.Bytes(), nil }

// Scan implements sql.Scanner.
func (s *Set) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = Set{}
		return nil
	case []byte:
		out, err := FromBytes(v)
		if err != nil {
			return err
		}
		*s = out
		return nil
	case string:
		out, err := FromBytes([]byte(v))
		if err != nil {
			return err
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("privilege: unsupported scan type %T", src)
	}
}
