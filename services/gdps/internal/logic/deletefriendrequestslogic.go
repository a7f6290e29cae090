package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type DeleteFriendRequestsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDeleteFriendRequestsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeleteFriendRequestsLogic {
	return &DeleteFriendRequestsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DeleteFriendRequestsLogic) DeleteFriendRequests(req *types.DeleteFriendRequestsRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	targets := intList(req.Accounts)
	if len(targets) == 0 {
		if req.TargetAccountID <= 0 {
			return "", response.Failed
		}
		targets = []int{req.TargetAccountID}
	}
	for _, id := range targets {
		if err := l.svcCtx.Services.Friends.Delete(l.ctx, u.ID, id, req.IsSender != 0); err != nil {
			return "", err
		}
	}
	return "1", nil
}
