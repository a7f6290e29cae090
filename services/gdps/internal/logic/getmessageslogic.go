package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/gdps-go/gdps/internal/codec"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
	"github.com/gdps-go/gdps/services/gdps/internal/types"
)

type GetMessagesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetMessagesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetMessagesLogic {
	return &GetMessagesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetMessagesLogic) GetMessages(req *types.ListRequest) (resp string, err error) {
	u := svc.UserFrom(l.ctx)
	sent := req.GetSent != 0
	page, err := l.svcCtx.Services.Messages.List(l.ctx, u.ID, sent, req.Page, messagePageSize)
	if err != nil {
		return "", err
	}
	if len(page.Messages) == 0 {
		return "-2", nil
	}
	now := l.svcCtx.Now()
	rows := make([]string, 0, len(page.Messages))
	for _, m := range page.Messages {
		other := m.SenderUserID
		if sent {
			other = m.RecipientUserID
		}
		cp, ok := page.Counterparts[other]
		if !ok {
			continue
		}
		rows = append(rows, codec.Encode(codec.Message(m, cp, sent, false, now), codec.Sep))
	}
	return strings.Join(rows, codec.ListSep) + "#" + codec.Page(page.Total, req.Page, messagePageSize), nil
}
