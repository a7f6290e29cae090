package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UploadCommentLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUploadCommentLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UploadCommentLogic {
	return &UploadCommentLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UploadCommentLogic) UploadComment(req *types.UploadCommentRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	content, err := decodeText(req.Comment)
	if err != nil {
		return "", err
	}
	if _, err := l.svcCtx.Services.Comments.PostLevelComment(l.ctx, u.ID, req.LevelID, content, req.Percent); err != nil {
		return "", err
	}
	return "1", nil
}
