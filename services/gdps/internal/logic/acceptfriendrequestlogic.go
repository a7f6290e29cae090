package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type AcceptFriendRequestLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAcceptFriendRequestLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AcceptFriendRequestLogic {
	return &AcceptFriendRequestLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *AcceptFriendRequestLogic) AcceptFriendRequest(req *types.FriendRequestRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	if err := l.svcCtx.Services.Friends.Accept(l.ctx, u.ID, req.RequestID); err != nil {
		return "", err
	}
	return "1", nil
}
