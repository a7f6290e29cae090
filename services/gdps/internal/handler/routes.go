package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"github.com/gdps-go/gdps/internal/ratelimit"
	"github.com/gdps-go/gdps/services/gdps/internal/middleware"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.Use(middleware.RequestID)
	server.Use(middleware.NewActivityMiddleware(serverCtx).Handle)

	tx := middleware.NewTransactionMiddleware(serverCtx)
	auth := middleware.NewAuthMiddleware(serverCtx)
	limit := middleware.NewRateLimitMiddleware(serverCtx).Handle
	prefix := rest.WithPrefix(serverCtx.Config.Game.Prefix)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{middleware.UserAgent, tx.Handle},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/accounts/registerGJAccount.php",
					Handler: limit(ratelimit.Register)(RegisterHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/accounts/loginGJAccount.php",
					Handler: LoginHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJDailyLevel.php",
					Handler: DailyLevelHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJComments21.php",
					Handler: GetCommentsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJAccountComments20.php",
					Handler: GetAccCommentsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getAccountURL.php",
					Handler: AccountURLHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getCustomContentURL.php",
					Handler: CustomContentURLHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJSongInfo.php",
					Handler: SongInfoHandler(serverCtx),
				},
			}...,
		),
		prefix,
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{middleware.UserAgent, tx.Handle, auth.Identify},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/getGJUserInfo20.php",
					Handler: UserInfoHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJUsers20.php",
					Handler: UserSearchHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJLevels21.php",
					Handler: GetLevelsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/downloadGJLevel22.php",
					Handler: limit(ratelimit.LevelDownload)(DownloadLevelHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJCommentHistory.php",
					Handler: CommentHistoryHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJScores20.php",
					Handler: ScoresHandler(serverCtx),
				},
			}...,
		),
		prefix,
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{middleware.UserAgent, tx.Handle, auth.Handle},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/updateGJUserScore22.php",
					Handler: UpdateUserScoreHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/updateGJAccSettings20.php",
					Handler: AccountSettingsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/requestUserAccess.php",
					Handler: RequestUserAccessHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/uploadGJLevel21.php",
					Handler: limit(ratelimit.LevelUpload)(UploadLevelHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/deleteGJLevelUser20.php",
					Handler: DeleteLevelHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/updateGJDesc20.php",
					Handler: UpdateDescriptionHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/suggestGJStars20.php",
					Handler: SuggestStarsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/rateGJDemon21.php",
					Handler: RateDemonHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/rateGJStars211.php",
					Handler: RateStarsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/uploadGJComment21.php",
					Handler: limit(ratelimit.LevelComment)(UploadCommentHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/deleteGJComment20.php",
					Handler: DeleteCommentHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/uploadGJAccComment20.php",
					Handler: limit(ratelimit.CommentPost)(UploadAccCommentHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/deleteGJAccComment20.php",
					Handler: DeleteAccCommentHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/likeGJItem211.php",
					Handler: limit(ratelimit.Like)(LikeItemHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJFriendRequests20.php",
					Handler: FriendRequestsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/uploadFriendRequest20.php",
					Handler: limit(ratelimit.FriendRequest)(UploadFriendRequestHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/readGJFriendRequest20.php",
					Handler: ReadFriendRequestHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/deleteGJFriendRequests20.php",
					Handler: DeleteFriendRequestsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/acceptGJFriendRequest20.php",
					Handler: AcceptFriendRequestHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJUserList20.php",
					Handler: UserListHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/removeGJFriend20.php",
					Handler: RemoveFriendHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/blockGJUser20.php",
					Handler: limit(ratelimit.Block)(BlockUserHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/unblockGJUser20.php",
					Handler: UnblockUserHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/uploadGJMessage20.php",
					Handler: limit(ratelimit.MessageSend)(UploadMessageHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJMessages20.php",
					Handler: GetMessagesHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/downloadGJMessage20.php",
					Handler: DownloadMessageHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/deleteGJMessages20.php",
					Handler: DeleteMessagesHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/accounts/syncGJAccountNew.php",
					Handler: SyncAccountHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/accounts/backupGJAccountNew.php",
					Handler: limit(ratelimit.SaveUpload)(BackupAccountHandler(serverCtx)),
				},
				{
					Method:  http.MethodPost,
					Path:    "/getGJRewards.php",
					Handler: RewardsHandler(serverCtx),
				},
			}...,
		),
		prefix,
	)
}
