package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type FriendRequestsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewFriendRequestsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *FriendRequestsLogic {
	return &FriendRequestsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *FriendRequestsLogic) FriendRequests(req *types.ListRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	sent := req.GetSent != 0
	page, err := l.svcCtx.Services.Friends.List(l.ctx, u.ID, sent, req.Page, requestPageSize)
	if err != nil {
		return "", err
	}
	if len(page.Requests) == 0 {
		return "-2", nil
	}
	now := l.svcCtx.Now()
	rows := make([]string, 0, len(page.Requests))
	for _, fr := range page.Requests {
		other := fr.SenderUserID
		if sent {
			other = fr.RecipientUserID
		}
		cp, ok := page.Counterparts[other]
		if !ok {
			continue
		}
		rows = append(rows, codec.Encode(codec.FriendRequestEntry(fr, cp, now), codec.Sep))
	}
	return strings.Join(rows, codec.ListSep) + "#" + codec.Page(page.Total, req.Page, requestPageSize), nil
}
