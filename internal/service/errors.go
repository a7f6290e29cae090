package service

import "errors"

// Kind names a domain failure. Kinds share one flat namespace.
type Kind string

const (
	AuthNotFound           Kind = "AUTH_NOT_FOUND"
	AuthPasswordMismatch   Kind = "AUTH_PASSWORD_MISMATCH"
	AuthNoPrivilege        Kind = "AUTH_NO_PRIVILEGE"
	AuthUnsupportedVersion Kind = "AUTH_UNSUPPORTED_VERSION"

	UserUsernameExists  Kind = "USER_USERNAME_EXISTS"
	UserEmailExists     Kind = "USER_EMAIL_EXISTS"
	UserInvalidUsername Kind = "USER_INVALID_USERNAME"
	UserInvalidPassword Kind = "USER_INVALID_PASSWORD"
	UserInvalidEmail    Kind = "USER_INVALID_EMAIL"
	UserNotFound        Kind = "USER_NOT_FOUND"
	UserBlocked         Kind = "USER_BLOCKED"
	UserPrivate         Kind = "USER_PRIVATE"
	UserNoPrivilege     Kind = "USER_NO_PRIVILEGE"
	UserInvalidSettings Kind = "USER_INVALID_SETTINGS"

	LevelsNotFound           Kind = "LEVELS_NOT_FOUND"
	LevelsUpdateLocked       Kind = "LEVELS_UPDATE_LOCKED"
	LevelsNoUploadPermission Kind = "LEVELS_NO_UPLOAD_PERMISSION"
	LevelsNoUpdatePermission Kind = "LEVELS_NO_UPDATE_PERMISSION"
	LevelsNoDeletePermission Kind = "LEVELS_NO_DELETE_PERMISSION"
	LevelsNoRatePermission   Kind = "LEVELS_NO_RATE_PERMISSION"
	LevelsInvalidCustomSong  Kind = "LEVELS_INVALID_CUSTOM_SONG"
	LevelsInvalidName        Kind = "LEVELS_INVALID_NAME"
	LevelsInvalidDescription Kind = "LEVELS_INVALID_DESCRIPTION"
	LevelsNotDemon           Kind = "LEVELS_NOT_DEMON"
	LevelsDataNotFound       Kind = "LEVELS_DATA_NOT_FOUND"

	LevelScheduleUnset        Kind = "LEVEL_SCHEDULE_UNSET"
	LevelScheduleNoPermission Kind = "LEVEL_SCHEDULE_NO_PERMISSION"

	CommentsInvalidContent Kind = "COMMENTS_INVALID_CONTENT"
	CommentsNotFound       Kind = "COMMENTS_NOT_FOUND"
	CommentsInvalidOwner   Kind = "COMMENTS_INVALID_OWNER"
	CommentsTargetNotFound Kind = "COMMENTS_TARGET_NOT_FOUND"
	CommentsNoPrivilege    Kind = "COMMENTS_NO_PRIVILEGE"

	FriendRequestInvalidTargetID Kind = "FRIEND_REQUEST_INVALID_TARGET_ID"
	FriendRequestExists          Kind = "FRIEND_REQUEST_EXISTS"
	FriendRequestNotFound        Kind = "FRIEND_REQUEST_NOT_FOUND"
	FriendRequestInvalidOwner    Kind = "FRIEND_REQUEST_INVALID_OWNER"
	FriendRequestNoPrivilege     Kind = "FRIEND_REQUEST_NO_PRIVILEGE"
	FriendRequestDisabled        Kind = "FRIEND_REQUEST_DISABLED"
	FriendRequestInvalidContent  Kind = "FRIEND_REQUEST_INVALID_CONTENT"

	RelationshipInvalidTargetID Kind = "RELATIONSHIP_INVALID_TARGET_ID"
	RelationshipExists          Kind = "RELATIONSHIP_EXISTS"
	RelationshipNotFound        Kind = "RELATIONSHIP_NOT_FOUND"

	LikesAlreadyLiked  Kind = "LIKES_ALREADY_LIKED"
	LikesInvalidTarget Kind = "LIKES_INVALID_TARGET"
	LikesNoPrivilege   Kind = "LIKES_NO_PRIVILEGE"

	SongsNotFound Kind = "SONGS_NOT_FOUND"
	SongsBlocked  Kind = "SONGS_BLOCKED"

	SaveDataNotFound Kind = "SAVE_DATA_NOT_FOUND"

	MessagesInvalidRecipient Kind = "MESSAGES_INVALID_RECIPIENT"
	MessagesNotFound         Kind = "MESSAGES_NOT_FOUND"
	MessagesInvalidOwner     Kind = "MESSAGES_INVALID_OWNER"
	MessagesNoPrivilege      Kind = "MESSAGES_NO_PRIVILEGE"
	MessagesRecipientPrivate Kind = "MESSAGES_RECIPIENT_PRIVATE"
	MessagesInvalidContent   Kind = "MESSAGES_INVALID_CONTENT"

	DailyChestsAlreadyClaimed Kind = "DAILY_CHESTS_ALREADY_CLAIMED"
)

// Error is a domain failure a caller is expected to branch on.
type Error struct {
	Kind Kind
}

func (e *Error) Error() string { return string(e.Kind) }

func fail(k Kind) error { return &Error{Kind: k} }

// KindOf returns the kind carried by err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }
