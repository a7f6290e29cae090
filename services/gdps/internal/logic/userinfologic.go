package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UserInfoLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUserInfoLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UserInfoLogic {
	return &UserInfoLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UserInfoLogic) UserInfo(req *types.UserInfoRequest) (resp string, err error) {
	requesterID := svc.UserID(l.ctx)
	v, err := l.svcCtx.Services.Users.Get(l.ctx, requesterID, req.TargetAccountID, requesterID == req.TargetAccountID)
	if err != nil {
		return "", err
	}
	view := codec.ProfileView{
		Rank:         v.Rank,
		FriendStatus: v.FriendStatus,
		Request:      v.Request,
		Now:          l.svcCtx.Now(),
	}
	if c := v.Counters; c != nil {
		view.Counters = &codec.ProfileCounters{
			NewMessages:       c.NewMessages,
			NewFriendRequests: c.NewFriendRequests,
			NewFriends:        c.NewFriends,
		}
	}
	return codec.Encode(codec.Profile(v.User, view), codec.Sep), nil
}
