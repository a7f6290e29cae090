package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type UserListLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUserListLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UserListLogic {
	return &UserListLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UserListLogic) UserList(req *types.UserListRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	t := dom.RelationshipFriend
	if req.Type == 1 {
		t = dom.RelationshipBlocked
	}
	list, err := l.svcCtx.Services.Relationships.List(l.ctx, u.ID, t)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "-2", nil
	}
	rows := make([]string, len(list))
	for i, e := range list {
		rows[i] = codec.Encode(codec.RelationshipEntry(e.User, e.Unseen), codec.Sep)
	}
	return strings.Join(rows, codec.ListSep), nil
}
