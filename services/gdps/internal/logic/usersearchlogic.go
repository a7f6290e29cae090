package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UserSearchLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUserSearchLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UserSearchLogic {
	return &UserSearchLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UserSearchLogic) UserSearch(req *types.UserSearchRequest) (resp string, err error) {
	users, total, err := l.svcCtx.Services.Users.Search(l.ctx, svc.UserID(l.ctx), req.Str, req.Page, userPageSize)
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "-1", nil
	}
	rows := make([]string, len(users))
	for i, u := range users {
		rows[i] = codec.Encode(codec.UserSearchEntry(u, 0), codec.Sep)
	}
	return strings.Join(rows, codec.ListSep) + "#" + codec.Page(total, req.Page, userPageSize), nil
}
