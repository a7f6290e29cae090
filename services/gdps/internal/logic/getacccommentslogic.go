package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type GetAccCommentsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetAccCommentsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetAccCommentsLogic {
	return &GetAccCommentsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetAccCommentsLogic) GetAccComments(req *types.GetAccCommentsRequest) (resp string, err error) {
	comments, total, err := l.svcCtx.Services.Comments.ListUserComments(l.ctx, req.AccountID, req.Page, commentPageSize)
	if err != nil {
		return "", err
	}
	if len(comments) == 0 {
		return "#0:0:0", nil
	}
	now := l.svcCtx.Now()
	rows := make([]string, len(comments))
	for i, c := range comments {
		rows[i] = codec.Encode(codec.UserComment(c, now), codec.CommentSep)
	}
	return strings.Join(rows, codec.ListSep) + "#" + codec.Page(total, req.Page, commentPageSize), nil
}
