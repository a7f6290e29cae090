package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type GetCommentsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetCommentsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetCommentsLogic {
	return &GetCommentsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetCommentsLogic) GetComments(req *types.GetCommentsRequest) (resp string, err error) {
	count := clampCount(req.Count, commentPageSize)
	page, err := l.svcCtx.Services.Comments.ListLevelComments(l.ctx, req.LevelID, req.Page, count, req.Mode == 1)
	if err != nil {
		return "", err
	}
	return commentRows(page, req.Page, count, l.svcCtx.Now(), false), nil
}
