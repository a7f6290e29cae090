package ports

// Enumerations are stored and sent on the wire as their integer value.

type PrivacySetting int

const (
	PrivacyPublic PrivacySetting = iota
	PrivacyFriends
	PrivacyPrivate
)

func (p PrivacySetting) String() string {
	switch p {
	case PrivacyPublic:
		return "public"
	case PrivacyFriends:
		return "friends"
	case PrivacyPrivate:
		return "private"
	}
	return "unknown"
}

// Valid reports whether p is one of the defined settings.
func (p PrivacySetting) Valid() bool { return p >= PrivacyPublic && p <= PrivacyPrivate }

type CredentialVersion int

const (
	CredentialPlainBcrypt CredentialVersion = 1
	CredentialGJP2Bcrypt  CredentialVersion = 2
)

func (v CredentialVersion) String() string {
	switch v {
	case CredentialPlainBcrypt:
		return "PLAIN_BCRYPT"
	case CredentialGJP2Bcrypt:
		return "GJP2_BCRYPT"
	}
	return "UNKNOWN"
}

type LevelLength int

const (
	LengthTiny LevelLength = iota
	LengthShort
	LengthMedium
	LengthLong
	LengthXL
	LengthPlatformer
)

type LevelPublicity int

const (
	PublicityPublic LevelPublicity = iota
	PublicityGlobalUnlisted
	PublicityFriendsUnlisted
	PublicityFriendsSearchable
)

type LevelDifficulty int

const (
	DifficultyNA LevelDifficulty = iota
	DifficultyAuto
	DifficultyEasy
	DifficultyNormal
	DifficultyHard
	DifficultyHarder
	DifficultyInsane
	DifficultyDemon
)

// DifficultyFromStars maps a star rating onto the difficulty face the game shows.
func DifficultyFromStars(stars int) LevelDifficulty {
	switch {
	case stars <= 0:
		return DifficultyNA
	case stars == 1:
		return DifficultyAuto
	case stars == 2:
		return DifficultyEasy
	case stars == 3:
		return DifficultyNormal
	case stars <= 5:
		return DifficultyHard
	case stars <= 7:
		return DifficultyHarder
	case stars <= 9:
		return DifficultyInsane
	}
	return DifficultyDemon
}

// Numerator is the value the client divides by 10 to pick a difficulty face.
func (d LevelDifficulty) Numerator() int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyNormal:
		return 20
	case DifficultyHard:
		return 30
	case DifficultyHarder:
		return 40
	case DifficultyInsane, DifficultyDemon, DifficultyAuto:
		return 50
	}
	return 0
}

type DemonDifficulty int

// Values match the client's demon face indices.
const (
	DemonHard    DemonDifficulty = 0
	DemonEasy    DemonDifficulty = 3
	DemonMedium  DemonDifficulty = 4
	DemonInsane  DemonDifficulty = 5
	DemonExtreme DemonDifficulty = 6
)

// DemonFromRating maps the 1..5 rating the client submits.
func DemonFromRating(rating int) (DemonDifficulty, bool) {
	switch rating {
	case 1:
		return DemonEasy, true
	case 2:
		return DemonMedium, true
	case 3:
		return DemonHard, true
	case 4:
		return DemonInsane, true
	case 5:
		return DemonExtreme, true
	}
	return 0, false
}

// SearchFlag is a bitset of level distinctions.
type SearchFlag int

const (
	FlagEpic SearchFlag = 1 << iota
	FlagAwarded
	FlagMagic
	FlagLegendary
	FlagMythical
)

func (f SearchFlag) Has(o SearchFlag) bool { return f&o != 0 }

// EpicTier is the client's rating-tier value (key 42).
func (f SearchFlag) EpicTier() int {
	switch {
	case f.Has(FlagMythical):
		return 3
	case f.Has(FlagLegendary):
		return 2
	case f.Has(FlagEpic):
		return 1
	}
	return 0
}

type SearchType int

const (
	SearchQuery         SearchType = 0
	SearchMostDownloads SearchType = 1
	SearchMostLiked     SearchType = 2
	SearchTrending      SearchType = 3
	SearchRecent        SearchType = 4
	SearchUserLevels    SearchType = 5
	SearchFeatured      SearchType = 6
	SearchMagic         SearchType = 7
	SearchModerator     SearchType = 8
	SearchList          SearchType = 10
	SearchAwarded       SearchType = 11
	SearchFollowed      SearchType = 12
	SearchFriends       SearchType = 13
	SearchEpic          SearchType = 16
	SearchDaily         SearchType = 21
	SearchWeekly        SearchType = 22
)

type ScheduleType int

const (
	ScheduleDaily ScheduleType = iota
	ScheduleWeekly
)

func (t ScheduleType) String() string {
	if t == ScheduleWeekly {
		return "weekly"
	}
	return "daily"
}

type RelationshipType int

const (
	RelationshipFriend RelationshipType = iota
	RelationshipBlocked
)

type FriendStatus int

const (
	FriendStatusNone     FriendStatus = 0
	FriendStatusFriend   FriendStatus = 1
	FriendStatusIncoming FriendStatus = 3
	FriendStatusOutgoing FriendStatus = 4
)

type ChestType int

const (
	ChestView  ChestType = 0
	ChestSmall ChestType = 1
	ChestLarge ChestType = 2
)

func (c ChestType) String() string {
	switch c {
	case ChestSmall:
		return "small"
	case ChestLarge:
		return "large"
	}
	return "view"
}

type ShardType int

const (
	ShardFire ShardType = iota + 1
	ShardIce
	ShardPoison
	ShardShadow
	ShardLava
)

// ShardTypes lists every shard in client item order.
var ShardTypes = []ShardType{ShardFire, ShardIce, ShardPoison, ShardShadow, ShardLava}

// DemonKeyItem is the client item id of a demon key.
const DemonKeyItem = 6

type LikeTarget int

const (
	LikeTargetLevel        LikeTarget = 1
	LikeTargetLevelComment LikeTarget = 2
	LikeTargetUserComment  LikeTarget = 3
)

type SongSource int

const (
	SongSourceBoomlings SongSource = iota
	SongSourceNewgrounds
	SongSourceCustom
)
