package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type AccountSettingsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAccountSettingsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AccountSettingsLogic {
	return &AccountSettingsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *AccountSettingsLogic) AccountSettings(req *types.AccountSettingsRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	// The client only knows on and off for friend requests.
	friends := dom.PrivacyPublic
	if req.FriendPrivacy != 0 {
		friends = dom.PrivacyPrivate
	}
	_, err = l.svcCtx.Services.Users.UpdateSettings(l.ctx, u.ID, service.Settings{
		MessagePrivacy: dom.PrivacySetting(req.MessagePrivacy),
		FriendPrivacy:  friends,
		CommentPrivacy: dom.PrivacySetting(req.CommentPrivacy),
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Twitch:         req.Twitch,
	})
	if err != nil {
		return "", err
	}
	return "1", nil
}
