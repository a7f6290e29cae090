package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type DeleteAccCommentLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDeleteAccCommentLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeleteAccCommentLogic {
	return &DeleteAccCommentLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DeleteAccCommentLogic) DeleteAccComment(req *types.DeleteCommentRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	if err := l.svcCtx.Services.Comments.DeleteUserComment(l.ctx, u.ID, req.CommentID); err != nil {
		return "", err
	}
	return "1", nil
}
