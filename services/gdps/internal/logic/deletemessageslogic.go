package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/response"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type DeleteMessagesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDeleteMessagesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeleteMessagesLogic {
	return &DeleteMessagesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DeleteMessagesLogic) DeleteMessages(req *types.DeleteMessagesRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	ids := intList(req.Messages)
	if req.MessageID > 0 {
		ids = append(ids, req.MessageID)
	}
	if len(ids) == 0 {
		return "", response.Failed
	}
	if err := l.svcCtx.Services.Messages.Delete(l.ctx, u.ID, ids...); err != nil {
		return "", err
	}
	return "1", nil
}
