package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type CommentHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCommentHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CommentHistoryLogic {
	return &CommentHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CommentHistoryLogic) CommentHistory(req *types.CommentHistoryRequest) (resp string, err error) {
	count := clampCount(req.Count, commentPageSize)
	page, err := l.svcCtx.Services.Comments.ListHistory(l.ctx, svc.UserID(l.ctx), req.UserID, req.Page, count, req.Mode == 1)
	if err != nil {
		return "", err
	}
	return commentRows(page, req.Page, count, l.svcCtx.Now(), true), nil
}
