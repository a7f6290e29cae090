package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UploadFriendRequestLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUploadFriendRequestLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UploadFriendRequestLogic {
	return &UploadFriendRequestLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UploadFriendRequestLogic) UploadFriendRequest(req *types.UploadFriendRequestRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	msg, err := decodeText(req.Comment)
	if err != nil {
		return "", err
	}
	if _, err := l.svcCtx.Services.Friends.Send(l.ctx, u.ID, req.ToAccountID, msg); err != nil {
		return "", err
	}
	return "1", nil
}
