package types

type (
	RegisterRequest struct {
		UserName string `form:"userName"`
		Password string `form:"password"`
		Email    string `form:"email"`
	}

	LoginRequest struct {
		UserName string `form:"userName"`
		Password string `form:"password,optional"`
		GJP2     string `form:"gjp2,optional"`
		UDID     string `form:"udid,optional"`
	}

	UserInfoRequest struct {
		TargetAccountID int `form:"targetAccountID"`
	}

	UpdateUserScoreRequest struct {
		Stars        int `form:"stars,default=0"`
		Demons       int `form:"demons,default=0"`
		Moons        int `form:"moons,default=0"`
		Diamonds     int `form:"diamonds,default=0"`
		Coins        int `form:"coins,default=0"`
		UserCoins    int `form:"userCoins,default=0"`
		Color1       int `form:"color1,default=0"`
		Color2       int `form:"color2,default=3"`
		Color3       int `form:"color3,default=0"`
		IconType     int `form:"iconType,default=0"`
		AccIcon      int `form:"accIcon,default=1"`
		AccShip      int `form:"accShip,default=1"`
		AccBall      int `form:"accBall,default=1"`
		AccBird      int `form:"accBird,default=1"`
		AccDart      int `form:"accDart,default=1"`
		AccRobot     int `form:"accRobot,default=1"`
		AccSpider    int `form:"accSpider,default=1"`
		AccSwing     int `form:"accSwing,default=1"`
		AccJetpack   int `form:"accJetpack,default=1"`
		AccGlow      int `form:"accGlow,default=0"`
		AccExplosion int `form:"accExplosion,default=1"`
	}

	AccountSettingsRequest struct {
		MessagePrivacy int    `form:"mS,default=0"`
		FriendPrivacy  int    `form:"frS,default=0"`
		CommentPrivacy int    `form:"cS,default=0"`
		Youtube        string `form:"yt,optional"`
		Twitter        string `form:"twitter,optional"`
		Twitch         string `form:"twitch,optional"`
	}

	UploadLevelRequest struct {
		LevelID        int    `form:"levelID,default=0"`
		LevelName      string `form:"levelName"`
		LevelDesc      string `form:"levelDesc,optional"`
		LevelVersion   int    `form:"levelVersion,default=1"`
		LevelLength    int    `form:"levelLength,default=0"`
		AudioTrack     int    `form:"audioTrack,default=0"`
		SongID         int    `form:"songID,default=0"`
		Password       int    `form:"password,default=0"`
		Original       int    `form:"original,default=0"`
		TwoPlayer      int    `form:"twoPlayer,default=0"`
		Objects        int    `form:"objects,default=0"`
		Coins          int    `form:"coins,default=0"`
		RequestedStars int    `form:"requestedStars,default=0"`
		Unlisted       int    `form:"unlisted,default=0"`
		LowDetailMode  int    `form:"ldm,default=0"`
		LevelString    string `form:"levelString"`
		ExtraString    string `form:"extraString,optional"`
		GameVersion    int    `form:"gameVersion,default=22"`
		BinaryVersion  int    `form:"binaryVersion,default=0"`
	}

	GetLevelsRequest struct {
		Type            int    `form:"type,default=0"`
		Str             string `form:"str,optional"`
		Page            int    `form:"page,default=0"`
		Len             string `form:"len,optional"`
		Diff            string `form:"diff,optional"`
		DemonFilter     int    `form:"demonFilter,default=0"`
		Featured        int    `form:"featured,default=0"`
		Original        int    `form:"original,default=0"`
		TwoPlayer       int    `form:"twoPlayer,default=0"`
		Coins           int    `form:"coins,default=0"`
		Epic            int    `form:"epic,default=0"`
		Star            int    `form:"star,default=0"`
		NoStar          int    `form:"noStar,default=0"`
		Song            int    `form:"song,default=0"`
		CustomSong      int    `form:"customSong,default=0"`
		Uncompleted     int    `form:"uncompleted,default=0"`
		OnlyCompleted   int    `form:"onlyCompleted,default=0"`
		CompletedLevels string `form:"completedLevels,optional"`
		Followed        string `form:"followed,optional"`
	}

	LevelRequest struct {
		LevelID int `form:"levelID"`
	}

	UpdateDescriptionRequest struct {
		LevelID   int    `form:"levelID"`
		LevelDesc string `form:"levelDesc,optional"`
	}

	SuggestStarsRequest struct {
		LevelID int `form:"levelID"`
		Stars   int `form:"stars"`
		Feature int `form:"feature,default=-1"`
		Coins   int `form:"coins,default=-1"`
	}

	RateDemonRequest struct {
		LevelID int `form:"levelID"`
		Rating  int `form:"rating"`
		Mode    int `form:"mode,default=0"`
	}

	RateStarsRequest struct {
		LevelID int `form:"levelID"`
		Stars   int `form:"stars"`
	}

	DailyLevelRequest struct {
		Type   int `form:"type,default=0"`
		Weekly int `form:"weekly,default=0"`
	}

	UploadCommentRequest struct {
		LevelID int    `form:"levelID"`
		Comment string `form:"comment"`
		Percent int    `form:"percent,default=0"`
	}

	GetCommentsRequest struct {
		LevelID int `form:"levelID"`
		Page    int `form:"page,default=0"`
		Mode    int `form:"mode,default=0"`
		Count   int `form:"count,default=10"`
	}

	DeleteCommentRequest struct {
		CommentID int `form:"commentID"`
	}

	CommentHistoryRequest struct {
		UserID int `form:"userID"`
		Page   int `form:"page,default=0"`
		Mode   int `form:"mode,default=0"`
		Count  int `form:"count,default=10"`
	}

	UploadAccCommentRequest struct {
		Comment string `form:"comment"`
	}

	GetAccCommentsRequest struct {
		AccountID int `form:"accountID"`
		Page      int `form:"page,default=0"`
	}

	LikeItemRequest struct {
		ItemID int `form:"itemID"`
		Type   int `form:"type"`
		Like   int `form:"like,default=1"`
	}

	ListRequest struct {
		Page    int `form:"page,default=0"`
		GetSent int `form:"getSent,default=0"`
	}

	UploadFriendRequestRequest struct {
		ToAccountID int    `form:"toAccountID"`
		Comment     string `form:"comment,optional"`
	}

	FriendRequestRequest struct {
		RequestID int `form:"requestID"`
	}

	DeleteFriendRequestsRequest struct {
		TargetAccountID int    `form:"targetAccountID,default=0"`
		Accounts        string `form:"accounts,optional"`
		IsSender        int    `form:"isSender,default=0"`
	}

	UserListRequest struct {
		Type int `form:"type,default=0"`
	}

	TargetRequest struct {
		TargetAccountID int `form:"targetAccountID"`
	}

	UploadMessageRequest struct {
		ToAccountID int    `form:"toAccountID"`
		Subject     string `form:"subject,optional"`
		Body        string `form:"body,optional"`
	}

	DownloadMessageRequest struct {
		MessageID int `form:"messageID"`
		IsSender  int `form:"isSender,default=0"`
	}

	DeleteMessagesRequest struct {
		MessageID int    `form:"messageID,default=0"`
		Messages  string `form:"messages,optional"`
		IsSender  int    `form:"isSender,default=0"`
	}

	BackupRequest struct {
		SaveData      string `form:"saveData"`
		GameVersion   int    `form:"gameVersion,default=22"`
		BinaryVersion int    `form:"binaryVersion,default=0"`
	}

	RewardsRequest struct {
		RewardType int    `form:"rewardType,default=0"`
		Chk        string `form:"chk"`
		UDID       string `form:"udid,optional"`
	}

	ScoresRequest struct {
		Type  string `form:"type,default=top"`
		Count int    `form:"count,default=100"`
	}

	SongInfoRequest struct {
		SongID int `form:"songID"`
	}

	UserSearchRequest struct {
		Str  string `form:"str"`
		Page int    `form:"page,default=0"`
	}
)
