package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UploadAccCommentLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUploadAccCommentLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UploadAccCommentLogic {
	return &UploadAccCommentLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UploadAccCommentLogic) UploadAccComment(req *types.UploadAccCommentRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	content, err := decodeText(req.Comment)
	if err != nil {
		return "", err
	}
	if _, err := l.svcCtx.Services.Comments.PostUserComment(l.ctx, u.ID, content); err != nil {
		return "", err
	}
	return "1", nil
}
